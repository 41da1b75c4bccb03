// Package logger builds the zap logger used across the tool.
//
// Level "debug" selects the zap development configuration, which also surfaces the
// reconcilers' no-op and benign-absence diagnostics. Other levels use the production
// configuration. Format is either console (coloured levels, no stack traces) or json.
//
//	log, err := logger.New(&cfg.Log)
//	log.Info("deploy finished", zap.Int("created", n))
package logger

// Package minicron provides the process-level helpers shared by the minicron
// packages and CLI: environment-driven configuration and context-carried
// logging.
//
// Typical usage at startup:
//
//	minicron.InitLocalEnvConfig()
//
//	cfg, err := minicron.LoadConfig()
//	if err != nil {
//		return err
//	}
//
//	ctx = minicron.ContextWithLogger(ctx, logger)
//
// Parsing and prediction live in the cron subpackage; batching and
// formatting live in report.
package minicron

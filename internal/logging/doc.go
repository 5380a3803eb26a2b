// Package logging provides structured diagnostic logging for cc-context-awareness.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Console or JSON encoding on stderr
//   - Automatic context field injection (run.id, scope, template.id)
//
// Diagnostic logs are separate from the progress lines printed by package ui.
// They stay quiet at the default warn level and describe every
// read-modify-write step at debug.
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	cfg.Level = "debug"
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx := logging.WithRunID(ctx, logging.NewRunID())
//	ctx = logging.WithScope(ctx, "local")
//	logger.Debug(ctx, "settings written", zap.String("path", p))
//
// # Testing
//
//	tl := logging.NewTestLogger()
//	svc := installer.New(installer.Options{Logger: tl.Logger})
//	tl.AssertLogged(t, zapcore.DebugLevel, "settings written")
package logging

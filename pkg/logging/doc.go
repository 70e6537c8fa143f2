// Package logging builds the slog loggers used across influxmock.
//
// Components accept a *slog.Logger in their constructor or via a setter
// and fall back to Nop when none is given. Sub-loggers carry a
// "component" attribute:
//
//	log := logging.New(logging.Config{Level: logging.LevelDebug})
//	engineLog := logging.Component(log, "engine")
//	engineLog.Info("directive applied", "directive", "429-1")
//
// Config.Mirror duplicates every record to a second writer, which the
// serve command uses for --log-file.
package logging

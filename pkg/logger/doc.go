// Package logger builds log/slog loggers for services embedding the SDK and
// provides the attribute helpers the SDK uses for its own records.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "billing")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// SDK components accept a *slog.Logger through their options and fall back
// to Discard, so nothing is written unless the caller opts in.
package logger

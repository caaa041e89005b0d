package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied; booleans are applied when
// the key is listed in source.SetFields.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Server != "" {
		target.Server = source.Server
		target.Sources["server"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	if source.RateLimit != 0 {
		target.RateLimit = source.RateLimit
		target.Sources["rateLimit"] = sourceType
	}
	if source.BreakerFailures != 0 {
		target.BreakerFailures = source.BreakerFailures
		target.Sources["breakerFailures"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
		target.Sources["logFile"] = sourceType
	}
	if source.SetFields["json"] || (source.SetFields == nil && source.JSON) {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

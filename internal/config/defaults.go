package config

const (
	defaultBackendURL           = "http://127.0.0.1:5000"
	defaultHealthPath           = "/api/status"
	defaultEntryPoint           = "backend/app.py"
	defaultShutdownGraceSeconds = 5
	defaultReadinessTimeoutSecs = 120
	defaultIntervalMillis       = 1000
	defaultRequestTimeoutMillis = 500
	defaultStateDir             = "~/.local/share/stagehand"
	defaultLogDir               = "~/.local/share/stagehand/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNotifyRequestTimeout = 10
	defaultJournalRetentionDays = 60
	defaultSurfaceEnabled       = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Backend: Backend{
			URL:                  defaultBackendURL,
			HealthPath:           defaultHealthPath,
			EntryPoint:           defaultEntryPoint,
			ShutdownGraceSeconds: defaultShutdownGraceSeconds,
		},
		Readiness: Readiness{
			TimeoutSeconds:       defaultReadinessTimeoutSecs,
			IntervalMillis:       defaultIntervalMillis,
			RequestTimeoutMillis: defaultRequestTimeoutMillis,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Surface: Surface{
			Enabled: defaultSurfaceEnabled,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Journal: Journal{
			RetentionDays: defaultJournalRetentionDays,
		},
	}
}

package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	"vhpidbg.dev/pkg/vhpidbg/internal/domain"
	"vhpidbg.dev/pkg/vhpidbg/internal/wire"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "vhpidbg"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	listenFlagName      = "listen"
	designFlagName      = "design"
	modeFlagName        = "mode"
	maxSessionsFlagName = "max-sessions"
	acceptOnceFlagName  = "accept-once"
	spillDirFlagName    = "spill-dir"
	addressFlagName     = "address"
	timeoutFlagName     = "timeout"
	rawFlagName         = "raw"

	listenAddressKey      = "listen.address"
	serverModeKey         = "server.mode"
	serverMaxSessionsKey  = "server.max_sessions"
	serverAcceptOnceKey   = "server.accept_once"
	designFileKey         = "design.file"
	wireMaxFrameSizeKey   = "wire.max_frame_size"
	recorderSpillDirKey   = "recorder.spill_dir"
	inspectAddressKey     = "inspect.address"
	inspectDialTimeoutKey = "inspect.dial_timeout"

	defaultDesignFile = "design.yaml"

	envPrefix = "VHPIDBG"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".vhpidbg.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(listenAddressKey, domain.DefaultListenAddress)
	viper.SetDefault(serverModeKey, string(domain.ModeSequential))
	viper.SetDefault(serverMaxSessionsKey, domain.DefaultMaxSessions)
	viper.SetDefault(serverAcceptOnceKey, false)
	viper.SetDefault(designFileKey, defaultDesignFile)
	viper.SetDefault(wireMaxFrameSizeKey, wire.DefaultMaxFrameSize)
	viper.SetDefault(recorderSpillDirKey, "")
	viper.SetDefault(inspectAddressKey, "")
	viper.SetDefault(inspectDialTimeoutKey, adapter.DefaultDialTimeout)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// serverConfig assembles the debug server configuration from viper.
func serverConfig() (domain.Config, error) {
	mode, err := domain.ParseServerMode(viper.GetString(serverModeKey))
	if err != nil {
		return domain.Config{}, err
	}

	return domain.Config{
		Address:  viper.GetString(listenAddressKey),
		SpillDir: viper.GetString(recorderSpillDirKey),
		Server: domain.ServerConfig{
			Mode:         mode,
			MaxSessions:  viper.GetInt(serverMaxSessionsKey),
			AcceptOnce:   viper.GetBool(serverAcceptOnceKey),
			MaxFrameSize: viper.GetInt(wireMaxFrameSizeKey),
		},
	}, nil
}

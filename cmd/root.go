package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wisdomhq/shellprobe/core"
)

const (
	version               = "0.2.0"
	defaultConfigFilename = "config"
	envPrefix             = "SHELLPROBE"
)

type Config struct {
	App    AppConfig         `mapstructure:"app"`
	Checks core.CheckOptions `mapstructure:"checks"`
}

type AppConfig struct {
	Port              int     `mapstructure:"port"`
	UpdateSnapshots   bool    `mapstructure:"update_snapshots"`
	SnapshotThreshold float64 `mapstructure:"snapshot_threshold"`
	SnapshotDir       string  `mapstructure:"snapshot_dir"`
	WorkspaceRoot     string  `mapstructure:"workspace_root"`
	AppCmd            string  `mapstructure:"app_cmd"`
	Timeout           int     `mapstructure:"timeout"`
	IsBrowserHead     bool    `mapstructure:"head"`
	IsLeaveHead       bool    `mapstructure:"leave_head"`
	IsLeakless        bool    `mapstructure:"leakless"`
	IsDebug           bool    `mapstructure:"debug"`
	IsVerbose         bool    `mapstructure:"verbose"`
}

var config = Config{}

var flagToConfigKey = map[string]string{
	"update-snapshots":   "app.update_snapshots",
	"snapshot-threshold": "app.snapshot_threshold",
	"snapshot-dir":       "app.snapshot_dir",
	"workspace-root":     "app.workspace_root",
	"app-cmd":            "app.app_cmd",
	"leave":              "app.leave_head",
}

var RootCmd = &cobra.Command{
	Use:          "shellprobe",
	Short:        "Shell probe",
	Long:         `Behavioral and visual-regression checks for the wisdom navigation shell.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		core.InitLogger(config.App.IsVerbose, config.App.IsDebug)

		err := initializeConfig(cmd)
		if err != nil {
			return err
		}

		logrus.Debugf("Final config: %+v", config)
		return nil
	},
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, vpr *viper.Viper) {
	cmd.Flags().VisitAll(func(flg *pflag.Flag) {
		configName, ok := flagToConfigKey[flg.Name]
		if !ok {
			configName = "app." + flg.Name
		}

		if err := vpr.BindPFlag(configName, flg); err != nil {
			logrus.Errorf("Unable to bind flag %s: %v", flg.Name, err)
		}

		if flg.Changed {
			val, err := parseFlagValue(flg)
			if err != nil {
				logrus.Errorf("Unable to parse flag %s: %v", flg.Name, err)
				return
			}
			vpr.Set(configName, val)
		}
	})
}

func parseFlagValue(flg *pflag.Flag) (interface{}, error) {
	switch flg.Value.Type() {
	case "string":
		return flg.Value.String(), nil
	case "bool":
		return strconv.ParseBool(flg.Value.String())
	case "int":
		return strconv.Atoi(flg.Value.String())
	case "float64":
		return strconv.ParseFloat(flg.Value.String(), 64)
	default:
		return flg.Value.String(), nil
	}
}

// Initialize Viper
func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	// Base name of the config file, without the file extension
	v.SetConfigName(defaultConfigFilename)
	v.AddConfigPath(".")

	// 1. Config file (lowest priority). Missing files are fine, the flags
	// carry full defaults.
	err := v.ReadInConfig()
	if err != nil {
		logrus.Debugf("No config file: %v", err)
	}

	// 2. Environment variables (medium priority). Bind environment variables to their equivalent keys with underscores
	for _, key := range v.AllKeys() {
		envKey := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		err := v.BindEnv(key, envKey)
		if err != nil {
			logrus.Errorf("Unable to bind ENV value: %v", err)
		}
	}

	// 3. Command flags (highest priority). Bind the current command's flags to viper
	bindFlags(cmd, v)

	// Dump Viper values to config struct
	err = v.Unmarshal(&config)
	if err != nil {
		return fmt.Errorf("cannot unmarshall config: %v", err)
	}

	if config.App.IsDebug {
		logrus.Debug("Viper config:")
		v.Debug()
	}
	return nil
}

func init() {
	RootCmd.PersistentFlags().IntVarP(&config.App.Port, "port", "p", 4180, "Port the application under test binds to")
	RootCmd.PersistentFlags().BoolVarP(&config.App.UpdateSnapshots, "update-snapshots", "u", false, "Accept current captures as the new baselines")
	RootCmd.PersistentFlags().Float64VarP(&config.App.SnapshotThreshold, "snapshot-threshold", "", core.DefaultSnapshotThreshold, "Normalized mean pixel difference above which a snapshot fails")
	RootCmd.PersistentFlags().StringVarP(&config.App.SnapshotDir, "snapshot-dir", "", "", "Snapshot directory root (default <workspace-root>/ui/tests/playwright_snapshots)")
	RootCmd.PersistentFlags().StringVarP(&config.App.WorkspaceRoot, "workspace-root", "w", ".", "Workspace root of the application under test")
	RootCmd.PersistentFlags().StringVarP(&config.App.AppCmd, "app-cmd", "", "go run ./cmd/wisdom", "Command starting the application under test, run from <workspace-root>/server")
	RootCmd.PersistentFlags().IntVarP(&config.App.Timeout, "timeout", "t", 30, "Timeout in seconds for browser element lookups")
	RootCmd.PersistentFlags().BoolVarP(&config.App.IsVerbose, "verbose", "v", false, "Use verbose output")
	RootCmd.PersistentFlags().BoolVarP(&config.App.IsDebug, "debug", "d", false, "Use debug output. Disable headless browser")
	RootCmd.PersistentFlags().BoolVarP(&config.App.IsBrowserHead, "head", "", false, "Enable browser UI")
	RootCmd.PersistentFlags().BoolVarP(&config.App.IsLeakless, "leakless", "l", false, "Use leakless mode to insure browser instances are closed after the run")
	RootCmd.PersistentFlags().BoolVarP(&config.App.IsLeaveHead, "leave", "", false, "Leave browser and tabs opened after the run")
}

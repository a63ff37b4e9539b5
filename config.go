package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/cartas/game"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool

	roundTime     time.Duration
	helpAfter     time.Duration
	helpAttempts  int
	frameInterval time.Duration
	volume        float64
	mute          bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.roundTime < time.Second || c.roundTime%time.Second != 0 {
		return fmt.Errorf("invalid round time (must be a whole number of seconds, at least 1s): %s", c.roundTime)
	}
	if c.helpAfter < 0 || c.helpAfter > c.roundTime {
		return fmt.Errorf("invalid help delay (must be between 0 and the round time): %s", c.helpAfter)
	}
	if c.helpAttempts < 0 {
		return fmt.Errorf("invalid help attempts (must be non-negative): %d", c.helpAttempts)
	}
	if c.frameInterval < time.Millisecond {
		return fmt.Errorf("invalid frame interval (must be at least 1ms): %s", c.frameInterval)
	}
	if c.volume < 0 || c.volume > 1 {
		return fmt.Errorf("invalid volume (must be between 0 and 1 inclusive): %v", c.volume)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) rules() game.Rules {
	r := game.DefaultRules()
	r.RoundSeconds = int(c.roundTime / time.Second)
	r.HelpAfterSeconds = int(c.helpAfter / time.Second)
	r.HelpAfterAttempts = c.helpAttempts
	r.FrameInterval = c.frameInterval
	return r
}

// bindEnv lets every flag in fs fall back to its CARTAS_* environment variable.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CARTAS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "cartas",
		Short:         "Drag eight cards into the right order before the clock runs out.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	play := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal instead of serving the web game.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return PlayTerminal(cmd.Context(), cfg)
		},
	}

	pfs := cmd.PersistentFlags()
	pfs.DurationVar(&cfg.frameInterval, "frame-interval", game.DefaultFrameInterval, "time between drag redraws (env: CARTAS_FRAME_INTERVAL)")
	pfs.DurationVar(&cfg.helpAfter, "help-after", time.Minute, "elapsed time before the solution guide unlocks (env: CARTAS_HELP_AFTER)")
	pfs.IntVar(&cfg.helpAttempts, "help-attempts", 2, "failed checks allowed before the solution guide unlocks (env: CARTAS_HELP_ATTEMPTS)")
	pfs.DurationVar(&cfg.roundTime, "round-time", game.DefaultRoundSeconds*time.Second, "length of a round (env: CARTAS_ROUND_TIME)")
	pfs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CARTAS_VERBOSE)")
	pfs.Float64Var(&cfg.volume, "volume", 0.28, "background music volume, 0 to 1 (env: CARTAS_VOLUME)")

	fs := cmd.Flags()
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CARTAS_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CARTAS_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CARTAS_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CARTAS_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: CARTAS_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CARTAS_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CARTAS_TLS_KEY)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: CARTAS_VERSION)")

	play.Flags().BoolVar(&cfg.mute, "mute", false, "do not play background music (env: CARTAS_MUTE)")

	bindEnv(v, pfs)
	bindEnv(v, fs)
	bindEnv(v, play.Flags())

	cmd.AddCommand(play)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("cartas v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

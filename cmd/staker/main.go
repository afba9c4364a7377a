package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stakeScope/internal/config"
	"stakeScope/internal/journal"
	journalpg "stakeScope/internal/journal/postgres"
	"stakeScope/internal/ledger"
	"stakeScope/internal/model"
	"stakeScope/internal/signer"
	"stakeScope/internal/staking"
)

func main() {
	root := &cobra.Command{
		Use:          "staker",
		Short:        "Solana staking pool client",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show staked balance, rewards, and available balance",
		RunE:  runStatus,
	}
	addServiceFlags(statusCmd)
	root.AddCommand(statusCmd)

	stakeCmd := &cobra.Command{
		Use:   "stake <amount>",
		Short: "Stake tokens into the pool",
		Args:  cobra.ExactArgs(1),
		RunE:  runStake,
	}
	addServiceFlags(stakeCmd)
	root.AddCommand(stakeCmd)

	unstakeCmd := &cobra.Command{
		Use:   "unstake <amount>",
		Short: "Withdraw staked tokens from the pool",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnstake,
	}
	addServiceFlags(unstakeCmd)
	root.AddCommand(unstakeCmd)

	initPoolCmd := &cobra.Command{
		Use:   "init-pool",
		Short: "Create the staking pool if it does not exist",
		RunE:  runInitPool,
	}
	addServiceFlags(initPoolCmd)
	root.AddCommand(initPoolCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "RPC endpoint URL (overrides network)")
	cmd.Flags().String("network", "devnet", "network name (devnet, testnet, mainnet-beta)")
	cmd.Flags().String("program-id", "", "staking program id")
	cmd.Flags().String("mint", "", "token mint")
	cmd.Flags().String("keypair", "", "path to Solana keypair file")
	cmd.Flags().String("commitment", "confirmed", "confirmation commitment (processed, confirmed, finalized)")
	cmd.Flags().Duration("confirm-timeout", 60*time.Second, "how long to wait for confirmation")
	cmd.Flags().String("journal", "./data/outcomes.jsonl", "outcome journal JSONL path (empty to disable)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for the outcome journal")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

type app struct {
	cfg     config.Config
	logger  *zap.Logger
	service *staking.Service
	user    solana.PublicKey
	cleanup func()
}

func buildApp(cmd *cobra.Command, needSigner bool) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	endpoint, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("parse program id: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(cfg.Mint)
	if err != nil {
		return nil, fmt.Errorf("parse mint: %w", err)
	}

	if cfg.KeypairPath == "" {
		return nil, fmt.Errorf("keypair is required")
	}
	keypair, err := signer.LoadKeypair(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}
	var sgn signer.Signer
	if needSigner {
		sgn = keypair
	}

	commitment := rpc.CommitmentType(cfg.Commitment)
	gateway := ledger.NewClient(endpoint, commitment, logger)

	cleanup := func() { _ = logger.Sync() }
	var sink journal.Sink
	if cfg.PGDSN != "" {
		store, err := journalpg.NewStore(cmd.Context(), cfg.PGDSN)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("open journal store: %w", err)
		}
		sink = store
		cleanup = func() {
			store.Close()
			_ = logger.Sync()
		}
	} else if cfg.JournalPath != "" {
		sink = journal.NewJsonlSink(cfg.JournalPath)
	}

	params := staking.Params{
		ProgramID:      programID,
		Mint:           mint,
		Commitment:     commitment,
		ConfirmTimeout: cfg.ConfirmTimeout,
		DefaultAPY:     5,
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: staking.New(params, gateway, sgn, sink, logger),
		user:    keypair.PublicKey(),
		cleanup: cleanup,
	}, nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	app, err := buildApp(cmd, false)
	if err != nil {
		return err
	}
	defer app.cleanup()

	view, err := app.service.Refresh(ctx, app.user)
	if err != nil {
		return err
	}

	fmt.Printf("wallet:    %s\n", app.user)
	fmt.Printf("available: %.9f\n", view.Available)
	fmt.Printf("staked:    %.9f\n", view.Staked)
	fmt.Printf("rewards:   %.9f\n", view.Rewards)
	fmt.Printf("apy:       %d%% (~%.9f/day)\n", view.APY, view.DailyReward())
	return nil
}

func runStake(cmd *cobra.Command, args []string) error {
	return runOperation(cmd, args[0], "stake")
}

func runUnstake(cmd *cobra.Command, args []string) error {
	return runOperation(cmd, args[0], "unstake")
}

func runOperation(cmd *cobra.Command, rawAmount, op string) error {
	ctx, stop := signalContext()
	defer stop()

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", rawAmount, err)
	}

	app, err := buildApp(cmd, true)
	if err != nil {
		return err
	}
	defer app.cleanup()

	var outcome *model.Outcome
	switch op {
	case "stake":
		outcome, err = app.service.Stake(ctx, amount)
	case "unstake":
		outcome, err = app.service.Unstake(ctx, amount)
	}
	if err != nil {
		if outcome != nil && outcome.Status == model.OutcomeUnknown {
			fmt.Printf("%s %s: outcome unknown, run status to reconcile (%s)\n", op, rawAmount, outcome.Signature)
		}
		return err
	}

	fmt.Printf("%s %s: %s (%s)\n", op, rawAmount, outcome.Status, outcome.Signature)
	return nil
}

func runInitPool(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	app, err := buildApp(cmd, true)
	if err != nil {
		return err
	}
	defer app.cleanup()

	pool, err := app.service.EnsurePool(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("pool: %s\n", pool)
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-faucet/internal/config"
	"github.com/tdex-network/tdex-faucet/internal/core/application"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/pkg/stats"
	"github.com/urfave/cli/v2"
)

const (
	exitCodeInternal      = 1
	exitCodeUnprocessable = 2
)

var networkFlag = cli.StringFlag{
	Name:  "network",
	Usage: "the network to use, one of slp, liquid or avm",
	Value: string(domain.NetworkSLP),
}

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "faucet"
	app.Usage = "Command line interface for dispensing test assets"
	app.Before = initConfig
	app.Commands = append(
		app.Commands,
		&ping,
		&send,
		&validate,
		&address,
		&history,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func initConfig(_ *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

// getFaucetService returns the faucet service for the configured networks.
// The returned cleanup closes the ledger and, if enabled, dumps the metrics
// collected during the command.
func getFaucetService(
	ctx *cli.Context,
) (application.FaucetService, func(), error) {
	registry := prometheus.NewRegistry()
	appConfig, err := config.GetApplicationConfig(ctx.Context, registry)
	if err != nil {
		return nil, nil, err
	}
	if err := appConfig.Validate(); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		appConfig.RepoManager().Close()

		if config.GetBool(config.EnableProfilerKey) {
			stats.PrintMemoryStatistics()
			dir := filepath.Join(config.GetDatadir(), config.ProfilerLocation)
			if err := stats.DumpMetrics(dir, registry); err != nil {
				log.WithError(err).Warn("failed to dump metrics")
			}
		}
	}
	return appConfig.FaucetService(), cleanup, nil
}

func getNetwork(ctx *cli.Context) (domain.NetworkKind, error) {
	return domain.ParseNetworkKind(ctx.String(networkFlag.Name))
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

// exitCode returns the process exit code for the given error.
func exitCode(err error) int {
	if application.KindOf(err) == application.ErrKindUnprocessable {
		return exitCodeUnprocessable
	}
	return exitCodeInternal
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[faucet] %v\n", err)
	}
	os.Exit(exitCode(err))
}

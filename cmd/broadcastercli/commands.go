package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/BoltzExchange/broadcaster/internal/utils"
	"github.com/BoltzExchange/broadcaster/pkg/api"
	"github.com/BoltzExchange/broadcaster/pkg/broadcaster"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

const minDaemonVersion = "0.1.0"

var yellowBold = color.New(color.FgHiYellow, color.Bold)
var green = color.New(color.FgGreen)
var red = color.New(color.FgRed)

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "Prints the output as JSON",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "Asks the providers for additional details",
}

var waitFlag = &cli.BoolFlag{
	Name:  "wait",
	Usage: "Waits for every provider and prints the full report",
}

func newTable(columns ...any) table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.New(columns...)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	return tbl
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " " + suffix
	return s
}

var getInfoCommand = &cli.Command{
	Name:     "getinfo",
	Category: "Info",
	Usage:    "Returns basic information about the daemon",
	Action:   getInfo,
	Flags:    []cli.Flag{jsonFlag},
}

func getInfo(ctx *cli.Context) error {
	client := getClient(ctx)
	version, err := client.GetVersion(ctx.Context)
	if err != nil {
		return err
	}

	if err := utils.CheckVersion("broadcasterd", version.Version, minDaemonVersion); err != nil {
		_, _ = yellowBold.Println("Warning: " + err.Error())
	}

	fee, err := client.GetFee(ctx.Context)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		printJson(struct {
			*api.VersionResponse
			*api.FeeResponse
		}{version, fee})
		return nil
	}

	fmt.Printf("Version: %s\n", version.Version)
	fmt.Printf("Chain: %s\n", version.Chain)
	fmt.Printf("Fee: %s\n", formatRate(fee.FeePerKb))
	return nil
}

var providersCommand = &cli.Command{
	Name:     "providers",
	Category: "Info",
	Usage:    "Lists the enabled providers and the ones that could not be started",
	Action:   listProviders,
	Flags:    []cli.Flag{jsonFlag},
}

func listProviders(ctx *cli.Context) error {
	response, err := getClient(ctx).GetProviders(ctx.Context)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		printJson(response)
		return nil
	}

	if _, err := yellowBold.Printf("Providers (%s)\n", response.Chain); err != nil {
		return err
	}
	tbl := newTable("Name", "State", "Reason")
	for _, name := range response.Providers {
		tbl.AddRow(name, green.Sprint("enabled"), "")
	}
	for _, name := range sortedKeys(response.Failures) {
		tbl.AddRow(name, red.Sprint("failed"), response.Failures[name])
	}
	tbl.Print()
	return nil
}

var feeCommand = &cli.Command{
	Name:     "fee",
	Category: "Info",
	Usage:    "Returns the lowest fee rate of the providers",
	Action:   getFee,
	Flags:    []cli.Flag{jsonFlag},
}

func getFee(ctx *cli.Context) error {
	fee, err := getClient(ctx).GetFee(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.Bool("json") {
		printJson(fee)
		return nil
	}
	fmt.Println(formatRate(fee.FeePerKb))
	return nil
}

var broadcastCommand = &cli.Command{
	Name:      "broadcast",
	Category:  "Transactions",
	Usage:     "Broadcasts a raw transaction through all providers",
	ArgsUsage: "<hex|@file>",
	Action:    requireNArgs(1, broadcast),
	Flags: []cli.Flag{
		jsonFlag,
		verboseFlag,
		waitFlag,
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "Skips the confirmation prompt",
		},
	},
}

func broadcast(ctx *cli.Context) error {
	hex, err := readTransaction(ctx.Args().First())
	if err != nil {
		return err
	}
	hex, err = broadcaster.EncodeTransaction(hex)
	if err != nil {
		return err
	}

	if !ctx.Bool("yes") {
		message := "Broadcast transaction?"
		// transactions of other chains might not deserialize, which is no reason to refuse them
		if txId, err := broadcaster.TxId(hex); err == nil {
			message = fmt.Sprintf("Broadcast transaction %s?", txId)
		}
		confirmed := false
		if err := survey.AskOne(&survey.Confirm{Message: message}, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			return errors.New("cancelled")
		}
	}

	jsonOutput := ctx.Bool("json")
	s := newSpinner("Broadcasting...")
	if !jsonOutput {
		s.Start()
	}
	response, err := getClient(ctx).Broadcast(ctx.Context, api.BroadcastRequest{
		Hex:     hex,
		Verbose: ctx.Bool("verbose"),
		Wait:    ctx.Bool("wait"),
	})
	if !jsonOutput {
		s.Stop()
	}
	if response == nil {
		return err
	}

	if jsonOutput {
		printJson(response)
		return err
	}

	if len(response.Report) > 0 {
		printBroadcastReport(response.Report)
		fmt.Println()
	}
	if err != nil {
		return err
	}
	if _, err := green.Printf("Broadcast transaction %s\n", response.Result.TxId); err != nil {
		return err
	}
	return nil
}

func printBroadcastReport(report map[string]*provider.BroadcastResult) {
	tbl := newTable("Provider", "Result", "Details")
	for _, name := range sortedKeys(report) {
		result := report[name]
		details := ""
		if len(result.Details) > 0 {
			details = fmt.Sprint(result.Details)
		}
		if result.Success() {
			tbl.AddRow(name, green.Sprint(result.TxId), details)
		} else {
			tbl.AddRow(name, red.Sprint(result.Error), details)
		}
	}
	tbl.Print()
}

var statusCommand = &cli.Command{
	Name:      "status",
	Category:  "Transactions",
	Usage:     "Looks up a transaction on all providers",
	ArgsUsage: "<txid>",
	Action:    requireNArgs(1, status),
	Flags:     []cli.Flag{jsonFlag, verboseFlag, waitFlag},
}

func status(ctx *cli.Context) error {
	txId := ctx.Args().First()
	if err := broadcaster.CheckTxId(txId); err != nil {
		return err
	}

	jsonOutput := ctx.Bool("json")
	s := newSpinner("Looking up transaction...")
	if !jsonOutput {
		s.Start()
	}
	response, err := getClient(ctx).Status(ctx.Context, txId, ctx.Bool("verbose"), ctx.Bool("wait"))
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		printJson(response)
		return nil
	}

	if len(response.Report) > 0 {
		printStatusReport(response.Report)
		fmt.Println()
	}

	result := response.Result
	if result == nil {
		_, _ = red.Println("Transaction not found")
		return nil
	}

	if result.Confirmed {
		_, _ = green.Printf("Confirmed with %d confirmation(s) in block %d\n", result.Confirmations, result.BlockHeight)
		if result.BlockHash != "" {
			fmt.Printf("Block: %s\n", result.BlockHash)
		}
	} else {
		_, _ = yellowBold.Println("Unconfirmed")
	}
	fmt.Printf("Source: %s\n", result.Name)
	return nil
}

func printStatusReport(report map[string]*provider.StatusResult) {
	tbl := newTable("Provider", "Valid", "Confirmed", "Confirmations", "Block Height")
	for _, name := range sortedKeys(report) {
		result := report[name]
		tbl.AddRow(name, result.Valid, result.Confirmed, result.Confirmations, result.BlockHeight)
	}
	tbl.Print()
}

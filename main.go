package main

import (
	"flag"
	"os"

	"github.com/nftjctl/nftjctl/cmd"
	"github.com/nftjctl/nftjctl/internal/brand"
	"github.com/nftjctl/nftjctl/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "load":
		loadFlags := flag.NewFlagSet("load", flag.ExitOnError)
		configFile := loadFlags.String("config", "", "Configuration file")
		loadFlags.StringVar(configFile, "c", "", "Configuration file (short)")
		example := loadFlags.Bool("example", false, "Load the embedded demonstration ruleset")
		dryRun := loadFlags.Bool("dry-run", false, "Validate only, do not apply")
		loadFlags.BoolVar(dryRun, "n", false, "Validate only (short)")
		loadFlags.Parse(os.Args[2:])

		rulesetPath := ""
		if len(loadFlags.Args()) > 0 {
			rulesetPath = loadFlags.Arg(0)
		}
		if err := cmd.RunLoad(*configFile, rulesetPath, *example, *dryRun); err != nil {
			printer.Fprintf(os.Stderr, "Load failed: %v\n", err)
			os.Exit(1)
		}

	case "dump":
		dumpFlags := flag.NewFlagSet("dump", flag.ExitOnError)
		configFile := dumpFlags.String("config", "", "Configuration file")
		pretty := dumpFlags.Bool("pretty", false, "Indent the JSON output")
		dumpFlags.BoolVar(pretty, "p", false, "Indent the JSON output (short)")
		dumpFlags.Parse(os.Args[2:])

		if err := cmd.RunDump(*configFile, *pretty); err != nil {
			printer.Fprintf(os.Stderr, "Dump failed: %v\n", err)
			os.Exit(1)
		}

	case "counters":
		countersFlags := flag.NewFlagSet("counters", flag.ExitOnError)
		configFile := countersFlags.String("config", "", "Configuration file")
		countersFlags.Parse(os.Args[2:])

		if err := cmd.RunCounters(*configFile); err != nil {
			printer.Fprintf(os.Stderr, "Counters failed: %v\n", err)
			os.Exit(1)
		}

	case "prune":
		pruneFlags := flag.NewFlagSet("prune", flag.ExitOnError)
		configFile := pruneFlags.String("config", "", "Configuration file")
		dryRun := pruneFlags.Bool("dry-run", false, "List matches without deleting")
		pruneFlags.BoolVar(dryRun, "n", false, "List matches without deleting (short)")
		skipEmpty := pruneFlags.Bool("skip-empty", false, "Do not submit when nothing matched")
		pruneFlags.Parse(os.Args[2:])

		if err := cmd.RunPrune(*configFile, *dryRun, *skipEmpty); err != nil {
			printer.Fprintf(os.Stderr, "Prune failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		configFile := diffFlags.String("config", "", "Configuration file")
		diffFlags.Parse(os.Args[2:])

		if len(diffFlags.Args()) < 1 {
			printer.Fprintf(os.Stderr, "Usage: %s diff <ruleset-file>\n", brand.BinaryName)
			os.Exit(1)
		}
		if err := cmd.RunDiff(*configFile, diffFlags.Arg(0)); err != nil {
			printer.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		configFile := checkFlags.String("config", "", "Configuration file")
		checkFlags.Parse(os.Args[2:])

		rulesetPath := ""
		if len(checkFlags.Args()) > 0 {
			rulesetPath = checkFlags.Arg(0)
		}
		if err := cmd.RunCheck(*configFile, rulesetPath); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "export":
		exportFlags := flag.NewFlagSet("export", flag.ExitOnError)
		exportFlags.Parse(os.Args[2:])

		path := ""
		if len(exportFlags.Args()) > 0 {
			path = exportFlags.Arg(0)
		}
		if err := cmd.RunExport(path); err != nil {
			printer.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}

	case "exporter":
		exporterFlags := flag.NewFlagSet("exporter", flag.ExitOnError)
		configFile := exporterFlags.String("config", "", "Configuration file")
		exporterFlags.Parse(os.Args[2:])

		if err := cmd.RunExporter(*configFile); err != nil {
			printer.Fprintf(os.Stderr, "Exporter failed: %v\n", err)
			os.Exit(1)
		}

	case "version", "-v", "--version":
		cmd.RunVersion()

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf("%s - %s\n\n", brand.Name, brand.Description)
	printer.Printf("Usage: %s <command> [options]\n\n", brand.BinaryName)
	printer.Println("Commands:")
	printer.Println("  load      Validate and apply a ruleset file (JSON or YAML)")
	printer.Println("  dump      Print the running ruleset as JSON")
	printer.Println("  counters  Show named counters and quotas")
	printer.Println("  prune     Delete rules whose expressions include a counter")
	printer.Println("  diff      Compare a ruleset file against the running state")
	printer.Println("  check     Validate a ruleset file without applying it")
	printer.Println("  export    Write a starter configuration file")
	printer.Println("  exporter  Serve counter and quota readings to Prometheus")
	printer.Println("  version   Show build information")
	printer.Println()
	printer.Printf("Run '%s <command> -h' for command options.\n", brand.BinaryName)
}

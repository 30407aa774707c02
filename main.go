package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Hack-Assembler/autograder"
	"github.gatech.edu/ECEInnovation/Hack-Assembler/emulator"
	"github.gatech.edu/ECEInnovation/Hack-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/Hack-Assembler/util"
)

var configPath string

func printWarnings(res *assembler.AssembledResult) {
	for _, d := range res.Diagnostics {
		if d.Severity == assembler.Warning {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: warning: %s\n", res.FileName, d.Range.Start.Line+1, d.Range.Start.Char+1, d.Message)
		}
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	conf, err := assembler.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("could not load config %s: %w", configPath, err)
	}
	assembler.SetConfig(conf)
	return nil
}

// cycleBudget resolves the --cycles flag. A negative value defers to the
// config and 0 is unlimited.
func cycleBudget(cycles int) uint64 {
	if cycles >= 0 {
		return uint64(cycles)
	}
	return uint64(assembler.GetConfig().MaxCycles)
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hackasm sourceFile",
		Short: "Assembler for the Hack computer",
		Long: `Hackasm translates Hack assembly into Hack machine code. The output is
written next to the source file with the extension replaced by .hack, and
only once the whole file assembled without errors.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			res, outPath, err := assembler.AssembleFile(args[0])
			if res != nil {
				printWarnings(res)
			}
			if err != nil {
				return err
			}
			glog.Infof("Wrote %s (%d instructions)", outPath, len(res.ProgramText))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", assembler.DefaultConfigFile, "assembler config file")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(newSymbolsCommand(), newLanguageServerCommand(), newServeCommand(), newRunCommand(), newGradeCommand())
	return rootCmd
}

func newSymbolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols sourceFile",
		Short: "Print the symbol table of an assembled program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res := assembler.Assemble(string(b))
			res.FileName = args[0]
			printWarnings(res)
			if err := res.Err(); err != nil {
				return err
			}
			pp.Println(res.Symbols.Map())
			return nil
		},
	}
}

func newLanguageServerCommand() *cobra.Command {
	var tcpAddr string
	cmd := &cobra.Command{
		Use:       "languageServer [debug]",
		Short:     "Serve the language server protocol on stdin/stdout",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"debug"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				util.LoggingEnabled = true
			}
			if tcpAddr != "" {
				return languageServer.ListenAndServeTCP(tcpAddr)
			}
			languageServer.ListenAndServe()
			return nil
		},
	}
	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "listen for editor connections on this address instead of stdio, e.g. :2036")
	return cmd
}

func newServeCommand() *cobra.Command {
	var addr string
	var cycles int
	cmd := &cobra.Command{
		Use:   "serve programFile",
		Short: "Run a program in the browser based emulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return emulator.RunStandaloneWebserver(args[0], addr, cycleBudget(cycles))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":2035", "listen address")
	cmd.Flags().IntVar(&cycles, "cycles", -1, "instruction budget per run, 0 is unlimited (default from config)")
	return cmd
}

func newRunCommand() *cobra.Command {
	var cycles int
	cmd := &cobra.Command{
		Use:   "run programFile",
		Short: "Run a program headless and print the CPU state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			program, err := emulator.LoadProgramFile(args[0])
			if err != nil {
				return err
			}

			em := emulator.NewEmulator(emulator.EmulatorConfig{
				Program:      program,
				RuntimeLimit: cycleBudget(cycles),
				RuntimeErrorCallback: func(e emulator.RuntimeException) {
					glog.Errorf("Runtime exception at PC=%d: %v", e.PC, e)
				},
			})
			em.Emulate()

			a, d, pc := em.GetRegisters()
			fmt.Printf("A=%d D=%d PC=%d instructions=%d halted=%v\n", a, d, pc, em.GetTotalInstructionsExecuted(), em.IsHalted())
			for i := uint16(0); i < 16; i++ {
				fmt.Printf("RAM[%d]=%d\n", i, int16(em.ReadRAM(i)))
			}
			if len(em.GetErrors()) > 0 {
				return em.GetErrors()[0]
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cycles, "cycles", -1, "instruction budget, 0 is unlimited (default from config)")
	return cmd
}

func newGradeCommand() *cobra.Command {
	var autograderConfig string
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade assembly test cases against reference machine code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			conf, err := autograder.LoadConfig(autograderConfig)
			if err != nil {
				return err
			}
			output, err := autograder.AutogradeAssembler(conf)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d points\n", conf.AssignmentName, output.Score())
			return nil
		},
	}
	cmd.Flags().StringVar(&autograderConfig, "autograder-config", autograder.DefaultConfigPath, "autograder config file")
	return cmd
}

func main() {
	// glog defaults to log files; a command line tool reports on stderr
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/concat/internal/commands"
	"github.com/temirov/concat/internal/config"
	"github.com/temirov/concat/internal/filter"
	"github.com/temirov/concat/internal/output"
	"github.com/temirov/concat/internal/services/clipboard"
	"github.com/temirov/concat/internal/tokenizer"
	"github.com/temirov/concat/internal/types"
	"github.com/temirov/concat/internal/utils"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	recursiveFlagName   = "recursive"
	recursiveShorthand  = "r"
	includeFlagName     = "include"
	excludeFlagName     = "exclude"
	configFlagName      = "config"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	copyFlagName        = "copy"
	initConfigFlagName  = "init-config"
	forceFlagName       = "force"
	versionFlagName     = "version"

	rootUse              = "concat [flags] PATH..."
	rootShortDescription = "Concatenate files into one document with a directory structure header"
	rootLongDescription  = `concat concatenates multiple files into one, with a directory structure header and file delimiters.
Paths can be files or directories. Directories contribute their direct files, or every nested file with --recursive.
Use --include and --exclude to filter by extension; exclusion wins when both name the same extension.`
	rootUsageExample = `  # Concatenate every Python file below src into bundle.txt
  concat -r --include py -o bundle.txt src

  # Print a directory's files to standard output, skipping notebooks and JSON
  concat --exclude ipynb --exclude json ./notes`

	outputFlagDescription     = "output file name; standard output when omitted"
	recursiveFlagDescription  = "recursively traverse directories to find files"
	includeFlagDescription    = "include only files with this extension (repeatable)"
	excludeFlagDescription    = "exclude files with this extension (repeatable)"
	configFlagDescription     = "path to a configuration file used instead of ./" + utils.ConfigFileName
	tokensFlagDescription     = "report the token count of the generated output"
	modelFlagDescription      = "tokenizer model to use for token counting"
	copyFlagDescription       = "copy the generated output to the system clipboard"
	initConfigFlagDescription = "write the default configuration (local or global) and exit"
	forceFlagDescription      = "overwrite an existing configuration file when used with --" + initConfigFlagName
	versionFlagDescription    = "display application version"

	versionTemplate              = "concat version: %s\n"
	configurationWrittenTemplate = "Configuration written to %s\n"
	confirmationFileTemplate     = "All files concatenated into '%s'.\n"
	confirmationStandardOutput   = "All files concatenated to STDOUT.\n"
	clipboardCopiedMessage       = "Copied output to clipboard."

	warningTokenCounterFormat = "Warning: failed to initialize tokenizer: %v"
	warningTokenCountFormat   = "Warning: failed to count tokens: %v"
	warningClipboardFormat    = "Warning: %v"
	workingDirectoryErrorFmt  = "unable to determine working directory: %w"
	errorCloseOutputFormat    = "closing output file '%s': %w"
)

// CounterFactory builds the token counter for a model.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Environment carries the process resources the command writes to and the services it calls.
type Environment struct {
	Stdout           io.Writer
	Logger           *zap.Logger
	Copier           clipboard.Copier
	NewCounter       CounterFactory
	WorkingDirectory string
}

func (environment Environment) withDefaults() Environment {
	if environment.Stdout == nil {
		environment.Stdout = os.Stdout
	}
	if environment.Logger == nil {
		environment.Logger = zap.NewNop()
	}
	if environment.Copier == nil {
		environment.Copier = clipboard.NewService()
	}
	if environment.NewCounter == nil {
		environment.NewCounter = tokenizer.NewCounter
	}
	return environment
}

// Execute runs the concat application against the process standard streams.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Environment{Stdout: os.Stdout, Logger: logger})
	return rootCommand.Execute()
}

// commandOptions stores the raw flag values.
type commandOptions struct {
	outputPath  string
	recursive   bool
	include     []string
	exclude     []string
	configPath  string
	countTokens bool
	tokenModel  string
	copyOutput  bool
	initTarget  string
	force       bool
	showVersion bool
}

// concatenationSettings are the effective values after configuration files and flags are merged.
type concatenationSettings struct {
	outputPath  string
	recursive   bool
	include     []string
	exclude     []string
	countTokens bool
	tokenModel  string
	copyOutput  bool
}

// NewRootCommand builds the concat Cobra command.
func NewRootCommand(environment Environment) *cobra.Command {
	environment = environment.withDefaults()
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if options.showVersion || options.initTarget != "" {
				return nil
			}
			return cobra.MinimumNArgs(1)(command, arguments)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(environment.Stdout, versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if options.initTarget != "" {
				return initializeConfiguration(environment, options)
			}
			settings, settingsError := resolveSettings(command, options, environment)
			if settingsError != nil {
				return settingsError
			}
			return runConcatenation(settings, arguments, environment)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flags.BoolVarP(&options.recursive, recursiveFlagName, recursiveShorthand, false, recursiveFlagDescription)
	flags.StringArrayVar(&options.include, includeFlagName, nil, includeFlagDescription)
	flags.StringArrayVar(&options.exclude, excludeFlagName, nil, excludeFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flags.BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	flags.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flags.BoolVar(&options.copyOutput, copyFlagName, false, copyFlagDescription)
	flags.StringVar(&options.initTarget, initConfigFlagName, "", initConfigFlagDescription)
	flags.BoolVar(&options.force, forceFlagName, false, forceFlagDescription)
	flags.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

func initializeConfiguration(environment Environment, options commandOptions) error {
	writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
		Target:           config.InitTarget(options.initTarget),
		Force:            options.force,
		WorkingDirectory: environment.WorkingDirectory,
	})
	if initError != nil {
		return initError
	}
	fmt.Fprintf(environment.Stdout, configurationWrittenTemplate, writtenPath)
	return nil
}

// resolveSettings overlays explicitly set flags on the merged configuration files.
func resolveSettings(command *cobra.Command, options commandOptions, environment Environment) (concatenationSettings, error) {
	workingDirectory := environment.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return concatenationSettings{}, fmt.Errorf(workingDirectoryErrorFmt, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return concatenationSettings{}, loadError
	}

	flags := command.Flags()
	settings := concatenationSettings{
		outputPath:  applicationConfiguration.Output,
		recursive:   config.BoolValue(applicationConfiguration.Recursive, false),
		include:     applicationConfiguration.Include,
		exclude:     applicationConfiguration.Exclude,
		countTokens: config.BoolValue(applicationConfiguration.Tokens.Enabled, false),
		tokenModel:  applicationConfiguration.Tokens.Model,
		copyOutput:  config.BoolValue(applicationConfiguration.Clipboard, false),
	}
	if flags.Changed(outputFlagName) {
		settings.outputPath = options.outputPath
	}
	if flags.Changed(recursiveFlagName) {
		settings.recursive = options.recursive
	}
	if flags.Changed(includeFlagName) {
		settings.include = options.include
	}
	if flags.Changed(excludeFlagName) {
		settings.exclude = options.exclude
	}
	if flags.Changed(tokensFlagName) {
		settings.countTokens = options.countTokens
	}
	if flags.Changed(modelFlagName) || settings.tokenModel == "" {
		settings.tokenModel = options.tokenModel
	}
	if flags.Changed(copyFlagName) {
		settings.copyOutput = options.copyOutput
	}
	return settings, nil
}

// runConcatenation discovers, orders and renders the files named by paths.
func runConcatenation(settings concatenationSettings, paths []string, environment Environment) error {
	discoverer := commands.Discoverer{
		Recursive: settings.recursive,
		Filter:    filter.NewSpec(settings.include, settings.exclude),
		Logger:    environment.Logger,
	}
	topLevelPaths := discoverer.Discover(paths)
	files := commands.FlattenFiles(topLevelPaths)
	treeLines := commands.RenderDirectoryStructure(topLevelPaths)

	captureOutput := settings.countTokens || settings.copyOutput
	renderedDocument, writeError := writeDocument(settings.outputPath, environment.Stdout, treeLines, files, captureOutput)
	if writeError != nil {
		return writeError
	}

	if settings.outputPath != "" {
		fmt.Fprintf(environment.Stdout, confirmationFileTemplate, settings.outputPath)
	} else {
		fmt.Fprint(environment.Stdout, confirmationStandardOutput)
	}

	if settings.countTokens {
		reportSummary(environment, settings.tokenModel, len(files), renderedDocument)
	}
	if settings.copyOutput {
		if copyError := environment.Copier.Copy(string(renderedDocument)); copyError != nil {
			environment.Logger.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
		} else {
			environment.Logger.Info(clipboardCopiedMessage)
		}
	}
	return nil
}

// writeDocument writes the concatenation to its sink and releases the sink before returning.
// When capture is set the rendered bytes are returned as well.
func writeDocument(outputPath string, standardOutput io.Writer, treeLines []string, files []string, capture bool) (renderedDocument []byte, err error) {
	sink, openError := output.OpenSink(outputPath, standardOutput)
	if openError != nil {
		return nil, openError
	}
	defer func() {
		if closeError := sink.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
		}
	}()

	var capturedDocument bytes.Buffer
	destination := sink.Writer
	if capture {
		destination = io.MultiWriter(sink.Writer, &capturedDocument)
	}
	if writeError := output.NewConcatenationWriter(destination).Write(treeLines, files); writeError != nil {
		return nil, writeError
	}
	return capturedDocument.Bytes(), nil
}

func reportSummary(environment Environment, model string, fileCount int, renderedDocument []byte) {
	summary := &types.OutputSummary{
		TotalFiles: fileCount,
		TotalSize:  utils.FormatFileSize(int64(len(renderedDocument))),
	}
	counter, resolvedModel, counterError := environment.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		environment.Logger.Warn(fmt.Sprintf(warningTokenCounterFormat, counterError))
	} else {
		countResult, countError := tokenizer.CountBytes(counter, renderedDocument)
		if countError != nil {
			environment.Logger.Warn(fmt.Sprintf(warningTokenCountFormat, countError))
		} else if countResult.Counted {
			summary.TotalTokens = countResult.Tokens
			summary.Model = resolvedModel
		}
	}
	environment.Logger.Info(output.FormatSummaryLine(summary))
}

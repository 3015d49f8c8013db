package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/coinfolio/config"
)

// EnvVerbose is set to "true" for extensions when -v is given.
const EnvVerbose = "CFO_VERBOSE"

// extensionEnv returns the environment of an extension: the current one plus
// the global flags. config.Load reads them back, so an extension written in
// Go gets the same settings as cfo.
func extensionEnv() []string {
	env := os.Environ()
	if *configFile != "" {
		env = append(env, config.EnvConfig+"="+*configFile)
	}
	if *holdingsFile != "" {
		env = append(env, config.EnvHoldings+"="+*holdingsFile)
	}
	if *outputDir != "" {
		env = append(env, config.EnvOutputDir+"="+*outputDir)
	}
	if *verbose {
		env = append(env, config.EnvLogLevel+"=debug")
	}
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*verbose))
	return env
}

// RunExtension attempts to find and execute an external cfo-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cfo-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

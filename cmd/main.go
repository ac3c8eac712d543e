package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/jaxxstorm/nextver"
	"github.com/sirupsen/logrus"
)

// Version will be set by build process
var Version = "dev"

type CLI struct {
	Bump             string `short:"b" default:"auto" enum:"auto,none,patch,minor,major" help:"Version bump to apply (auto derives it from commit messages)"`
	Release          bool   `help:"Compute a release version without prerelease suffix"`
	Repo             string `short:"r" help:"Repository path (default: current directory)"`
	Commitish        string `default:"HEAD" help:"Git commitish to compute the version for"`
	Config           string `short:"c" default:".nextver.yaml" help:"Config file, relative paths are resolved against the repository"`
	TagRegex         string `help:"Pattern extracting the version from the last tag"`
	MajorRegex       string `help:"Pattern marking a commit as a major change"`
	MinorRegex       string `help:"Pattern marking a commit as a minor change"`
	PatchRegex       string `help:"Pattern marking a commit as a patch"`
	PrereleasePrefix string `help:"Label used for non-release versions"`
	TagFilter        string `help:"Regex pattern to filter tags (e.g., '^sdk/')"`
	JSON             bool   `short:"j" help:"Output as JSON"`
	Verbose          bool   `short:"v" help:"Show debug logs"`
	ShowVersion      bool   `help:"Show version information" name:"version"`

	out io.Writer `kong:"-"`
}

func main() {
	var cli CLI

	kong.Parse(&cli,
		kong.Name("nextver"),
		kong.Description("Compute the next semantic version from Conventional Commits"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	err := cli.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *CLI) Run() error {
	if c.ShowVersion {
		return c.showVersion()
	}

	return c.resolveVersion()
}

func (c *CLI) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}

func (c *CLI) showVersion() error {
	versionInfo := map[string]string{
		"version": Version,
		"name":    "nextver",
	}

	if c.JSON {
		return json.NewEncoder(c.stdout()).Encode(versionInfo)
	}

	fmt.Fprintf(c.stdout(), "nextver version %s\n", Version)
	return nil
}

func (c *CLI) resolveVersion() error {
	log := newLogger(c.Verbose)

	repoPath := c.Repo
	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	cfg, err := c.projectConfig(repoPath)
	if err != nil {
		return err
	}

	mode, err := nextver.ParseBumpMode(c.Bump)
	if err != nil {
		return err
	}

	repo, err := nextver.OpenRepository(repoPath)
	if err != nil {
		return fmt.Errorf("opening repository %q: %w", repoPath, err)
	}

	gitRepo, err := nextver.NewGitRepository(repo, nextver.GitOptions{
		Commitish:  plumbing.Revision(c.Commitish),
		TagPattern: c.TagFilter,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	res, err := nextver.ResolveRepository(cfg, gitRepo, mode, c.Release)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"current": res.Current,
		"bump":    res.Severity.String(),
		"commits": res.Commits,
	}).Debug("resolved version")

	if c.JSON {
		return json.NewEncoder(c.stdout()).Encode(res)
	}

	fmt.Fprintln(c.stdout(), res.Version)
	return nil
}

// projectConfig layers command line overrides over the config file, which
// itself is layered over the defaults.
func (c *CLI) projectConfig(repoPath string) (nextver.ProjectConfig, error) {
	path := c.Config
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(repoPath, path)
	}

	cfg := nextver.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = nextver.LoadConfig(path)
		if err != nil {
			return nextver.ProjectConfig{}, err
		}
	}

	return cfg.Merge(nextver.ProjectConfig{
		PrereleasePrefix: c.PrereleasePrefix,
		TagRegex:         c.TagRegex,
		MajorRegex:       c.MajorRegex,
		MinorRegex:       c.MinorRegex,
		PatchRegex:       c.PatchRegex,
	})
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

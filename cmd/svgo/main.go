package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/tdewolff/argp"

	"github.com/tdewolff/svgo"
	"github.com/tdewolff/svgo/job"
)

// Version is the current svgo version.
var Version = "built from source"

var (
	hidden            bool
	recursive         bool
	quiet             bool
	verbose           int
	version           bool
	watch             bool
	configPath        string
	useStdin          bool
	useStdout         bool
	preserveOwnership bool
	ignoreRegexp      []*regexp.Regexp
)

// Task is one file to optimise: a single source path (or "" for stdin)
// and a single destination path (or "" for stdout).
type Task struct {
	root string
	src  string
	dst  string
}

// NewTask returns a new Task, resolving dst when it names a directory.
func NewTask(root, input, output string) (Task, error) {
	if len(output) != 0 && (output == "." || output[len(output)-1] == os.PathSeparator) {
		rel, err := filepath.Rel(root, input)
		if err != nil {
			return Task{}, err
		}
		output = filepath.Join(output, rel)
	}
	return Task{root, input, output}, nil
}

// Loggers.
var (
	Error   *log.Logger
	Warning *log.Logger
	Info    *log.Logger
)

func main() {
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string
	var ignore []string

	f := argp.New("svgo")
	f.AddRest(&inputs, "inputs", "Input files or directories, leave blank to use stdin")
	f.AddOpt(&output, "o", "output", "Output file or directory, leave blank to use stdout")
	f.AddOpt(&configPath, "", "config", "Configuration file (YAML or JSON, SVGO-plugins shape or direct job overlay)")
	f.AddOpt(&useStdin, "", "stdin", "Force reading from stdin")
	f.AddOpt(&useStdout, "", "stdout", "Force writing to stdout")
	f.AddOpt(&recursive, "r", "recursive", "Recursively optimise directories")
	f.AddOpt(&hidden, "a", "all", "Optimise all files, including hidden files and files in hidden directories")
	f.AddOpt(&ignore, "", "ignore", "Glob pattern of paths to skip")
	f.AddOpt(&quiet, "q", "quiet", "Quiet mode to suppress all output")
	f.AddOpt(argp.Count{&verbose}, "v", "verbose", "Verbose mode, set twice for more verbosity")
	f.AddOpt(&watch, "w", "watch", "Watch files and re-optimise upon changes")
	f.AddOpt(&preserveOwnership, "", "preserve-ownership", "Preserve file ownership (uid/gid) from source to destination, where supported")
	f.AddOpt(&version, "", "version", "Version")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("svgo %s\n", Version)
		}
		return 0
	}

	Error = log.New(ioutil.Discard, "", 0)
	Warning = log.New(ioutil.Discard, "", 0)
	Info = log.New(ioutil.Discard, "", 0)
	if !quiet {
		Error = log.New(os.Stderr, "ERROR: ", 0)
		if 0 < verbose {
			Warning = log.New(os.Stderr, "WARNING: ", 0)
		}
		if 1 < verbose {
			Info = log.New(os.Stderr, "INFO: ", 0)
		}
	}
	if preserveOwnership && !supportsGetOwnership {
		Warning.Println("--preserve-ownership not supported on this platform")
	}

	for _, pattern := range ignore {
		re, err := globToRegexp(pattern)
		if err != nil {
			Error.Println(err)
			return 2
		}
		ignoreRegexp = append(ignoreRegexp, re)
	}

	opts, err := loadOptions()
	if err != nil {
		Error.Println(err)
		return 2
	}

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0]
	}
	if useStdin || len(inputs) == 0 {
		useStdin = true
	}
	if useStdout || output == "" {
		output = ""
		useStdout = true
	}

	if useStdin && (watch || recursive) {
		Error.Println("--watch and --recursive don't work with stdin, specify input paths")
		return 2
	}
	if useStdout && recursive {
		Error.Println("--recursive doesn't work with stdout, specify an output directory")
		return 2
	}

	for i, input := range inputs {
		if input == "-" {
			Error.Println("cannot mix files and stdin as input")
			return 2
		}
		inputs[i] = filepath.Clean(input)
	}

	dirDst := false
	if output != "" {
		dirDst = IsDir(output)
		if !dirDst && 1 < len(inputs) {
			Error.Printf("stat %v: no such file or directory\n", output)
			return 2
		}
		output = filepath.Clean(output)
		if dirDst {
			output += string(os.PathSeparator)
		}
	} else if 1 < len(inputs) {
		Error.Println("must specify --output for multiple input files with stdout destination")
		return 2
	}
	if dirDst {
		if err := os.MkdirAll(output, 0777); err != nil {
			Error.Println(err)
			return 2
		}
	}

	var tasks []Task
	var roots []string
	if useStdin {
		task, err := NewTask("", "", output)
		if err != nil {
			Error.Println(err)
			return 2
		}
		tasks = append(tasks, task)
		roots = append(roots, "")
	} else {
		fsys := NewFS()
		tasks, roots, err = createTasks(fsys, inputs, output)
		if err != nil {
			Error.Println(err)
			return 2
		}
	}

	fails := 0
	start := time.Now()
	if !watch && (len(tasks) == 1 || 0 < verbose) {
		for _, task := range tasks {
			if ok := optimiseTask(task, opts); !ok {
				fails++
			}
		}
	} else {
		numWorkers := runtime.NumCPU()
		if 0 < verbose {
			numWorkers = 1
		} else if numWorkers < 4 {
			numWorkers = 4
		}

		chanTasks := make(chan Task, 20)
		chanFails := make(chan int, numWorkers)
		for n := 0; n < numWorkers; n++ {
			go optimiseWorker(chanTasks, chanFails, opts)
		}

		if !watch {
			for _, task := range tasks {
				chanTasks <- task
			}
		} else {
			watcher, err := NewWatcher(recursive)
			if err != nil {
				Error.Println(err)
				return 2
			}
			defer watcher.Close()
			changes := watcher.Run()

			for _, filename := range inputs {
				watcher.AddPath(filename)
			}
			for _, task := range tasks {
				watcher.IgnoreNext(task.dst)
				chanTasks <- task
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)
			for changes != nil {
				select {
				case <-c:
					watcher.Close()
				case file, ok := <-changes:
					if !ok {
						changes = nil
						break
					}
					file = filepath.Clean(file)

					root := ""
					for _, path := range roots {
						pathRel, err1 := filepath.Rel(path, file)
						rootRel, err2 := filepath.Rel(root, file)
						if err2 != nil || err1 == nil && len(pathRel) < len(rootRel) {
							root = path
						}
					}

					task, err := NewTask(root, file, output)
					if err != nil {
						Error.Println(err)
						return 2
					}
					watcher.IgnoreNext(task.dst)
					chanTasks <- task
				}
			}
		}

		close(chanTasks)
		for n := 0; n < numWorkers; n++ {
			fails += <-chanFails
		}
	}

	if !watch {
		Info.Println("finished in", time.Since(start))
	}
	if 0 < fails {
		return 1
	}
	return 0
}

func loadOptions() (*svgo.Options, error) {
	if configPath == "" {
		return svgo.Default()
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}
	return job.LoadConfigFile(configPath, data)
}

func optimiseWorker(chanTasks <-chan Task, chanFails chan<- int, opts *svgo.Options) {
	fails := 0
	for task := range chanTasks {
		if ok := optimiseTask(task, opts); !ok {
			fails++
		}
	}
	chanFails <- fails
}

func globToRegexp(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, `\*\*`, `.*`)
	quoted = strings.ReplaceAll(quoted, `\*`, fmt.Sprintf(`[^%c]*`, filepath.Separator))
	quoted = strings.ReplaceAll(quoted, `\?`, fmt.Sprintf(`[^%c]?`, filepath.Separator))
	return regexp.Compile("^" + quoted + "$")
}

func ignored(filename string) bool {
	for _, re := range ignoreRegexp {
		if re.MatchString(filename) {
			return true
		}
	}
	return false
}

func fileMatches(filename string) bool {
	if ignored(filename) {
		return false
	}
	return strings.EqualFold(filepath.Ext(filename), ".svg")
}

func createTasks(fsys fs.FS, inputs []string, output string) ([]Task, []string, error) {
	var tasks []Task
	var roots []string
	for _, input := range inputs {
		root := filepath.Clean(filepath.Dir(input))
		input = filepath.Clean(input)

		info, err := fs.Stat(fsys, input)
		if err != nil {
			return nil, nil, err
		}

		if info.Mode().IsRegular() {
			if !ignored(input) {
				task, err := NewTask(root, input, output)
				if err != nil {
					return nil, nil, err
				}
				tasks = append(tasks, task)
			}
		} else if info.Mode().IsDir() {
			if !recursive {
				Warning.Println("--recursive not specified, omitting directory", input)
				continue
			}
			walkFn := func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				} else if d.Name() == "." || d.Name() == ".." {
					return nil
				} else if !hidden && strings.HasPrefix(d.Name(), ".") {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.Type().IsRegular() && fileMatches(path) {
					task, err := NewTask(root, path, output)
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				}
				return nil
			}
			if err := fs.WalkDir(fsys, input, walkFn); err != nil {
				return nil, nil, err
			}
			roots = append(roots, root)
		} else {
			return nil, nil, fmt.Errorf("not a file or directory %s", input)
		}
	}
	return tasks, roots, nil
}

func optimiseTask(t Task, opts *svgo.Options) bool {
	srcName := t.src
	if srcName == "" {
		srcName = "stdin"
	}
	dstName := t.dst
	if dstName == "" {
		dstName = "stdout"
	}

	// Read the whole source into memory before opening the destination:
	// src and dst may be the same path, and openOutputFile truncates.
	fr, err := openInputFile(t.src)
	if err != nil {
		Error.Println(err)
		return false
	}
	b, err := ioutil.ReadAll(fr)
	fr.Close()
	if err != nil {
		Error.Println("cannot read " + srcName + ":", err)
		return false
	}

	startTime := time.Now()
	result, err := svgo.OptimiseFile(t.src, string(b), opts)
	if err != nil {
		Error.Println("cannot optimise "+srcName+":", err)
		return false
	}
	for _, warn := range result.Warnings {
		Warning.Println(warn.String())
	}
	for _, abort := range result.Aborted {
		Warning.Println(abort.Error())
	}

	fw, err := openOutputFile(t.dst)
	if err != nil {
		Error.Println(err)
		return false
	}
	_, err = io.Copy(fw, bytes.NewReader([]byte(result.Output)))
	fw.Close()
	if err != nil {
		Error.Println(err)
		return false
	}

	if preserveOwnership && supportsGetOwnership && t.src != "" && t.dst != "" {
		if srcInfo, err := os.Stat(t.src); err != nil {
			Warning.Println(err)
		} else if uid, gid, ok := getOwnership(srcInfo); ok {
			if err := os.Chown(t.dst, uid, gid); err != nil {
				Warning.Println(err)
			}
		}
	}

	if !quiet {
		dur := time.Since(startTime)
		rLen, wLen := len(b), len(result.Output)
		ratio := 1.0
		if 0 < rLen {
			ratio = float64(wLen) / float64(rLen)
		}
		stats := fmt.Sprintf("(%9v, %6v, %6v, %5.1f%%)", dur, humanize.Bytes(uint64(rLen)), humanize.Bytes(uint64(wLen)), ratio*100)
		if srcName != dstName {
			fmt.Println(stats, "-", srcName, "to", dstName)
		} else {
			fmt.Println(stats, "-", srcName)
		}
	}
	return true
}

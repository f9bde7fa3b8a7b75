package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

// Имя файла, который пишет симулятор, если путь не задан
const defaultLogFile = "simulation.log"

// Переменная окружения с путём к логу, флаги имеют приоритет
const envLogFile = "SWARMLOG_FILE"

type options struct {
	path     string
	format   Format
	summary  bool
	tui      bool
	logLevel log.Level
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run возвращает код выхода: 0 — успех, 1 — источник недоступен, 2 — ошибка аргументов
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.Error(err)
		return 2
	}
	logger.SetLevel(opts.logLevel)

	input, closeInput, err := openInput(opts.path, stdin)
	if err != nil {
		logger.WithField("file", opts.path).Error(err)
		return 1
	}
	defer closeInput()
	logger.WithField("file", opts.path).Info("разбор лога")

	// в json/yaml и в интерфейсе уведомления попадают в сам результат
	var notes bytes.Buffer
	notify := stdout
	if opts.tui || opts.format != FormatText {
		notify = &notes
	}

	agg := NewAggregator(notify)
	if err := agg.Consume(input); err != nil {
		logger.WithField("file", opts.path).Error(err)
		return 1
	}

	stats := agg.Stats()
	logger.WithFields(log.Fields{
		"lines":     stats.Lines,
		"scans":     stats.Scans,
		"potential": stats.Potentials,
		"switches":  stats.Switches,
		"skipped":   stats.Skipped,
		"agents":    stats.Agents,
	}).Info("лог обработан")

	rep := NewReport(agg, opts.summary)
	lines := splitLines(notes.String())

	if opts.tui {
		p := tea.NewProgram(NewModel(rep, stats, lines), tea.WithAltScreen(), tea.WithInput(stdin), tea.WithOutput(stdout))
		if _, err := p.Run(); err != nil {
			logger.Errorf("ошибка интерфейса: %v", err)
			return 1
		}
		return 0
	}

	if opts.format != FormatText {
		rep.Notifications = lines
	}
	if err := WriteReport(stdout, rep, opts.format); err != nil {
		logger.Errorf("ошибка вывода: %v", err)
		return 1
	}
	return 0
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("swarm-log-tools", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Использование: swarm-log-tools [флаги] [<имя_лог_файла>|-]")
		fs.PrintDefaults()
	}

	file := fs.String("file", "", "путь к логу симуляции (- для stdin); по умолчанию $"+envLogFile+" или "+defaultLogFile)
	format := fs.String("format", string(FormatText), "формат вывода: text, json, yaml")
	summary := fs.Bool("summary", false, "добавить сводку: count, sum, mean, min, max")
	tui := fs.Bool("tui", false, "интерактивный просмотр вместо печати")
	level := fs.String("log-level", "warn", "уровень диагностики: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		return options{}, fmt.Errorf("ожидается не более одного файла, получено %d", fs.NArg())
	}

	opts := options{summary: *summary, tui: *tui}

	f, err := ParseFormat(*format)
	if err != nil {
		return options{}, err
	}
	opts.format = f

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return options{}, fmt.Errorf("неизвестный уровень логирования: %q", *level)
	}
	opts.logLevel = lvl

	opts.path = resolvePath(fs.Arg(0), *file, os.Getenv(envLogFile))
	if opts.tui && opts.path == "-" {
		return options{}, errors.New("-tui нельзя совместить с чтением из stdin")
	}
	return opts, nil
}

// resolvePath: позиционный аргумент > -file > окружение > имя по умолчанию
func resolvePath(arg, flagVal, envVal string) string {
	for _, v := range []string{arg, flagVal, envVal} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return defaultLogFile
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	return file, func() { file.Close() }, nil
}

// analyze 把YouTube链接提交给分析服务，打印结果或保存为Markdown。
//
//	analyze [-server http://localhost:8080] [-save] [-out DIR] <youtube-url>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"openzoa-analyze-go/internal/client"
	"openzoa-analyze-go/internal/youtube"
)

const usage = "usage: analyze [-server URL] [-save] [-out DIR] <youtube-url>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 返回进程退出码：0成功，1请求或写文件失败，2参数错误
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	server := fs.String("server", "http://localhost:8080", "analysis service base URL")
	save := fs.Bool("save", false, "save the analysis as analysis-<videoId>.md instead of printing it")
	outDir := fs.String("out", ".", "directory for -save")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := slog.New(slog.NewTextHandler(stderr, nil))

	url := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if url == "" {
		fs.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InfoContext(ctx, "Analysis is requested",
		"server", *server,
		"url", url)

	res, err := client.New(*server, nil).Analyze(ctx, url)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if !*save {
		fmt.Fprintln(stdout, res.Text)
		return 0
	}

	path := filepath.Join(*outDir, youtube.ExportFilename(url, time.Now()))
	if err := os.WriteFile(path, []byte(res.Text), 0644); err != nil {
		log.ErrorContext(ctx, "Failed to save analysis",
			"error", err,
			"path", path)
		return 1
	}

	log.InfoContext(ctx, "Analysis is saved",
		"path", path,
		"finishReason", res.FinishReason)
	return 0
}

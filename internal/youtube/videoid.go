// Package youtube 从常见的YouTube链接中提取视频ID，并据此生成导出文件名。
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// 视频ID会进入文件名和 Content-Disposition，只接受安全字符
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// VideoID 提取视频ID：
//   - youtube.com（含子域名）取 v 查询参数
//   - youtu.be 取路径第一段
func VideoID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())

	var id string
	switch {
	case strings.Contains(host, "youtube.com"):
		id = u.Query().Get("v")
	case host == "youtu.be":
		id, _, _ = strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	}

	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

// ExportFilename 导出Markdown的文件名，没有视频ID时用毫秒时间戳
func ExportFilename(raw string, now time.Time) string {
	if id, ok := VideoID(raw); ok {
		return "analysis-" + id + ".md"
	}
	return fmt.Sprintf("analysis-%d.md", now.UnixMilli())
}

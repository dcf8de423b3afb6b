// Package transcripts pulls subtitle transcripts for every video in the
// course playlist using yt-dlp. It is an independent batch utility, not
// part of the page pipeline: per-video failures are logged and counted,
// never raised, and a final summary reports what happened.
package transcripts

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"tianji-daily/pkg/task"
	"tianji-daily/pkg/util"
)

// Video is one playlist entry from yt-dlp's flat-playlist dump
type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Summary is the end-of-batch report
type Summary struct {
	Total     int `json:"total"`
	Extracted int `json:"extracted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Extractor runs the transcript batch
type Extractor struct {
	PlaylistURL string
	Dir         string // where Episode_NN_Transcript.txt files go
	MinSize     int64  // existing files above this size are considered done
	Tasks       *task.Manager
	Logger      *zap.Logger

	// runCmd is swapped out in tests so no yt-dlp binary is needed
	runCmd func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExtractor wires up an extractor that shells out to yt-dlp
func NewExtractor(playlistURL, dir string, minSize int64, tasks *task.Manager, logger *zap.Logger) *Extractor {
	return &Extractor{
		PlaylistURL: playlistURL,
		Dir:         dir,
		MinSize:     minSize,
		Tasks:       tasks,
		Logger:      logger,
		runCmd: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Run extracts transcripts for the whole playlist. Only an empty playlist
// or an unusable output directory fails the batch; individual videos just
// count against the summary.
func (e *Extractor) Run(ctx context.Context) (Summary, error) {
	taskID := e.Tasks.Create("transcripts")
	e.Tasks.UpdateStatus(taskID, task.StatusProcessing)

	if !util.EnsureDirectoryExists(e.Dir) {
		e.Tasks.SetError(taskID, "cannot create transcript directory")
		return Summary{}, fmt.Errorf("cannot create transcript directory %s", e.Dir)
	}

	videos, err := e.listPlaylist(ctx)
	if err != nil {
		e.Tasks.SetError(taskID, err.Error())
		return Summary{}, err
	}
	if len(videos) == 0 {
		e.Tasks.SetError(taskID, "no videos found in playlist")
		return Summary{}, fmt.Errorf("no videos found in playlist")
	}

	summary := Summary{Total: len(videos)}
	for i, v := range videos {
		episode := i + 1
		outFile := filepath.Join(e.Dir, fmt.Sprintf("Episode_%02d_Transcript.txt", episode))

		if util.FileExceedsSize(outFile, e.MinSize) {
			e.Logger.Debug("transcript already exists, skipping",
				zap.Int("episode", episode))
			summary.Skipped++
		} else if err := e.extractOne(ctx, v, episode, outFile); err != nil {
			e.Logger.Warn("transcript extraction failed",
				zap.Int("episode", episode),
				zap.String("video", v.ID),
				zap.Error(err))
			summary.Failed++
		} else {
			summary.Extracted++
		}

		e.Tasks.UpdateProgress(taskID,
			float32(i+1)/float32(len(videos))*100,
			fmt.Sprintf("episode %d/%d", episode, len(videos)))
	}

	e.Tasks.SetResult(taskID, summary)
	e.Logger.Info("transcript batch finished",
		zap.Int("total", summary.Total),
		zap.Int("extracted", summary.Extracted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// listPlaylist asks yt-dlp for the playlist contents, one JSON object per
// line
func (e *Extractor) listPlaylist(ctx context.Context) ([]Video, error) {
	out, err := e.runCmd(ctx, "yt-dlp", "--flat-playlist", "--dump-json", e.PlaylistURL)
	if err != nil {
		return nil, fmt.Errorf("listing playlist: %w", err)
	}

	var videos []Video
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var v Video
		if err := json.Unmarshal(line, &v); err != nil {
			continue // yt-dlp sometimes mixes warnings into stdout
		}
		if v.ID != "" {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// extractOne downloads one video's subtitles as VTT and rewrites them into
// the episode transcript file with a small header
func (e *Extractor) extractOne(ctx context.Context, v Video, episode int, outFile string) error {
	videoURL := "https://www.youtube.com/watch?v=" + v.ID
	tempBase := filepath.Join(e.Dir, fmt.Sprintf("temp_%02d", episode))

	_, err := e.runCmd(ctx, "yt-dlp",
		"--write-auto-sub", "--write-sub",
		"--sub-lang", "zh-Hans,zh-Hant,zh,en",
		"--skip-download",
		"--sub-format", "vtt",
		"-o", tempBase,
		videoURL)
	if err != nil {
		return fmt.Errorf("fetching subtitles: %w", err)
	}

	vttFiles, _ := filepath.Glob(tempBase + "*.vtt")
	if len(vttFiles) == 0 {
		return fmt.Errorf("no transcript available")
	}

	content, err := os.ReadFile(vttFiles[0])
	if err != nil {
		return fmt.Errorf("reading subtitle file: %w", err)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "Episode %02d: %s\n", episode, v.Title)
	fmt.Fprintf(&b, "Video URL: %s\n", videoURL)
	b.WriteString("================================================================================\n\n")
	b.Write(content)

	if err := os.WriteFile(outFile, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}

	// temp subtitle files are just noise once the transcript is written
	for _, f := range vttFiles {
		_ = os.Remove(f)
	}
	return nil
}

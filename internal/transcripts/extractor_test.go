package transcripts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tianji-daily/pkg/task"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor("https://example.com/playlist", t.TempDir(), 500, task.NewManager(), zap.NewNop())
}

// fakePlaylist is two videos plus a warning line yt-dlp mixed into stdout
const fakePlaylist = `{"id": "vid001", "title": "Episode One"}
WARNING: something harmless
{"id": "vid002", "title": "Episode Two"}
`

// fakeRunner answers the playlist dump and drops a vtt file for subtitle
// fetches, optionally failing for specific video ids
func fakeRunner(e *Extractor, failIDs ...string) func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if args[0] == "--flat-playlist" {
			return []byte(fakePlaylist), nil
		}

		videoURL := args[len(args)-1]
		for _, id := range failIDs {
			if strings.Contains(videoURL, id) {
				return nil, fmt.Errorf("simulated yt-dlp failure")
			}
		}

		// find the -o value and write a subtitle file next to it
		for i, a := range args {
			if a == "-o" {
				vtt := args[i+1] + ".zh-Hans.vtt"
				if err := os.WriteFile(vtt, []byte("WEBVTT\n\n00:00.000 --> 00:01.000\n你好\n"), 0644); err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	}
}

func TestRunExtractsEveryVideo(t *testing.T) {
	e := testExtractor(t)
	e.runCmd = fakeRunner(e)

	summary, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 2, Extracted: 2}, summary)

	content, err := os.ReadFile(filepath.Join(e.Dir, "Episode_01_Transcript.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Episode 01: Episode One")
	assert.Contains(t, string(content), "Video URL: https://www.youtube.com/watch?v=vid001")
	assert.Contains(t, string(content), "WEBVTT")

	// temp vtt files are cleaned up
	leftovers, err := filepath.Glob(filepath.Join(e.Dir, "temp_*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRunSkipsExistingLargeTranscripts(t *testing.T) {
	e := testExtractor(t)
	e.runCmd = fakeRunner(e)

	// episode 1 already extracted and big enough to trust
	existing := strings.Repeat("transcript line\n", 100)
	require.NoError(t, os.WriteFile(filepath.Join(e.Dir, "Episode_01_Transcript.txt"), []byte(existing), 0644))

	summary, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 2, Extracted: 1, Skipped: 1}, summary)

	// the existing file was not rewritten
	content, err := os.ReadFile(filepath.Join(e.Dir, "Episode_01_Transcript.txt"))
	require.NoError(t, err)
	assert.Equal(t, existing, string(content))
}

func TestRunDoesNotSkipPlaceholderFiles(t *testing.T) {
	e := testExtractor(t)
	e.runCmd = fakeRunner(e)

	// tiny placeholder, below the size threshold
	require.NoError(t, os.WriteFile(filepath.Join(e.Dir, "Episode_01_Transcript.txt"), []byte("[pending]"), 0644))

	summary, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 2, Extracted: 2}, summary)
}

func TestRunCountsFailuresAndContinues(t *testing.T) {
	e := testExtractor(t)
	e.runCmd = fakeRunner(e, "vid001")

	summary, err := e.Run(context.Background())
	require.NoError(t, err, "individual failures must not fail the batch")
	assert.Equal(t, Summary{Total: 2, Extracted: 1, Failed: 1}, summary)

	// the second video still got its transcript
	_, statErr := os.Stat(filepath.Join(e.Dir, "Episode_02_Transcript.txt"))
	assert.NoError(t, statErr)
}

func TestRunFailsWhenPlaylistEmpty(t *testing.T) {
	e := testExtractor(t)
	e.runCmd = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("WARNING: nothing here\n"), nil
	}

	_, err := e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no videos found")
}

func TestRunReportsThroughTaskManager(t *testing.T) {
	e := testExtractor(t)
	e.runCmd = fakeRunner(e)

	summary, err := e.Run(context.Background())
	require.NoError(t, err)

	// exactly one task, completed, with the summary attached
	tasks := e.Tasks.List()
	require.Len(t, tasks, 1)
	assert.Equal(t, "transcripts", tasks[0].Type)
	assert.Equal(t, task.StatusCompleted, tasks[0].Status)
	assert.EqualValues(t, 100, tasks[0].Progress)
	assert.Equal(t, summary, tasks[0].Result)
}

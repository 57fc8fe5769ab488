package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer makes bytes.Buffer safe for the concurrent writers below.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTextSink_RecordShape(t *testing.T) {
	var out, errOut bytes.Buffer
	s := NewText(&out, &errOut, false)

	s.Emit("dir/a.txt", 0)
	s.Emit("dir/b.txt", 42)

	assert.Equal(t, "dir/a.txt:0\ndir/b.txt:42\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestTextSink_DiagGoesToErrStream(t *testing.T) {
	var out, errOut bytes.Buffer
	s := NewText(&out, &errOut, false)

	s.Diag("skim: cannot open directory %s: %v", "/x", "denied")

	assert.Empty(t, out.String())
	assert.Equal(t, "skim: cannot open directory /x: denied\n", errOut.String())
}

func TestTextSink_ConcurrentEmitsDoNotInterleave(t *testing.T) {
	out := &syncBuffer{}
	errOut := &syncBuffer{}
	s := NewText(out, errOut, false)

	const workers = 16
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Emit(fmt.Sprintf("file-%02d.txt", w), int64(i))
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, workers*perWorker)

	shape := regexp.MustCompile(`^file-\d{2}\.txt:\d+$`)
	for _, line := range lines {
		assert.Regexp(t, shape, line)
	}
}

func TestJSONSink_Records(t *testing.T) {
	var out, errOut bytes.Buffer
	s := NewJSON(&out, &errOut)

	s.Emit("a.go", 7)
	s.Emit("b.go", 0)

	dec := json.NewDecoder(&out)
	var first, second Record
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, Record{Path: "a.go", Offset: 7}, first)
	assert.Equal(t, Record{Path: "b.go", Offset: 0}, second)
}

func TestJSONSink_ConcurrentRecordsParse(t *testing.T) {
	out := &syncBuffer{}
	errOut := &syncBuffer{}
	s := NewJSON(out, errOut)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Emit("p", int64(w*1000+i))
			}
		}(w)
	}
	wg.Wait()

	dec := json.NewDecoder(strings.NewReader(out.String()))
	count := 0
	for dec.More() {
		var r Record
		require.NoError(t, dec.Decode(&r))
		assert.Equal(t, "p", r.Path)
		count++
	}
	assert.Equal(t, 800, count)
}

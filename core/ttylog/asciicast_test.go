package ttylog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

type fakeTerminal struct {
	in  *bytes.Buffer
	out bytes.Buffer
}

func (f *fakeTerminal) Read(p []byte) (int, error)  { return f.in.Read(p) }
func (f *fakeTerminal) Write(p []byte) (int, error) { return f.out.Write(p) }

func TestRecorder_asciicastRoundTrip(t *testing.T) {
	term := &fakeTerminal{in: bytes.NewBufferString("whoami\n")}
	var cast bytes.Buffer

	recorder := NewRecorder(term, NewAsciicastLogSink(&cast))
	clock := time.Unix(1700000000, 0)
	recorder.now = func() time.Time {
		clock = clock.Add(500 * time.Millisecond)
		return clock
	}

	buf := make([]byte, 64)
	n, err := recorder.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "whoami\n", string(buf[:n]))

	_, err = recorder.Write([]byte("root\r\n"))
	require.NoError(t, err)
	require.NoError(t, recorder.Close())

	assert.Equal(t, "root\r\n", term.out.String())

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"version":2`)
	assert.Equal(t, `[0,"i","whoami\n"]`, lines[1])
	assert.Equal(t, `[0.5,"o","root\r\n"]`, lines[2])

	var entries []*Entry
	err = Replay(NewAsciicastLogSource(&cast), func(e *Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, FDStdin, entries[0].FD)
	assert.Equal(t, FDStdout, entries[1].FD)
	assert.EqualValues(t, 500000, entries[1].TimestampMicros)
}

func TestNewClientOutput(t *testing.T) {
	var out bytes.Buffer
	sink := NewClientOutput(&out)

	require.NoError(t, sink(&Entry{FD: FDStdin, Data: []byte("ls\n")}))
	require.NoError(t, sink(&Entry{FD: FDStdout, Data: []byte("README.txt")}))
	require.NoError(t, sink(&Entry{FD: FDStderr, Data: []byte("!")}))
	require.NoError(t, sink(&Entry{Close: true}))

	assert.Equal(t, "README.txt!", out.String())
}

func TestAsciicastLogSource_malformed(t *testing.T) {
	src := NewAsciicastLogSource(strings.NewReader("{}\n[1, \"o\"]\n"))
	_, err := src.Next()
	assert.Error(t, err)
}

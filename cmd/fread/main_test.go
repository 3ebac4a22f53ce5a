package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/fread"
	"github.com/bjaus/fread/envelope"
	"github.com/bjaus/fread/query"
	"github.com/bjaus/fread/render"
)

const (
	gradesCSV = "Name,Grade\nAlice,A\nBob,B\n"
	schoolXML = `<school><student id="1">Alice<grade>A</grade></student><student id="2">Bob<grade>B</grade></student></school>`
)

// execute runs the command line args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(&out, &errOut, args)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadRecords(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "grades.csv", gradesCSV)
	tests := map[string]struct {
		args []string
		want string
	}{
		"default fields": {
			want: "Name: Alice\nGrade: A\n\nName: Bob\nGrade: B\n",
		},
		"csv": {
			args: []string{"--format", "csv"},
			want: gradesCSV,
		},
		"json": {
			args: []string{"-o", "json"},
			want: `[{"Name":"Alice","Grade":"A"},{"Name":"Bob","Grade":"B"}]` + "\n",
		},
		"plain table with numbers": {
			args: []string{"--format", "table", "--border", "none", "--number", "#"},
			want: "#  Name   Grade\n-  -----  -----\n1  Alice  A\n2  Bob    B\n",
		},
		"where": {
			args: []string{"--where", `.Grade == "A"`, "--format", "csv"},
			want: "Name,Grade\nAlice,A\n",
		},
		"where nothing matches": {
			args: []string{"--where", `.Grade == "F"`, "--format", "json"},
			want: "[]\n",
		},
		"template": {
			args: []string{"--format", `go-template={{.Get "Name"}}`},
			want: "Alice\nBob\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, _, err := execute(t, append([]string{"read", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReadTable(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "grades.csv", gradesCSV)
	out, _, err := execute(t, "read", path, "--format", "table", "--title", "Grades", "--color")
	require.NoError(t, err)
	assert.Contains(t, out, "Grades")
	assert.Contains(t, out, "Alice")
	assert.True(t, strings.HasPrefix(out, "╭"))
}

func TestReadTree(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "school.xml", schoolXML)
	tests := map[string]struct {
		args []string
		want string
	}{
		"default text": {
			want: strings.Join([]string{
				"<school>",
				"  <student> Alice",
				"    <grade> A",
				"    </grade>",
				"  </student>",
				"  <student> Bob",
				"    <grade> B",
				"    </grade>",
				"  </student>",
				"</school>",
			}, "\n") + "\n",
		},
		"depth and indent": {
			args: []string{"--depth", "1", "--indent", "4"},
			want: "<school>\n    <student> Alice\n    </student>\n    <student> Bob\n    </student>\n</school>\n",
		},
		"xpath with attrs": {
			args: []string{"--xpath", `//student[@id="2"]`, "--attrs", "--depth", "0"},
			want: "<student id=\"2\"> Bob\n  <grade> B\n  </grade>\n</student>\n",
		},
		"yaml": {
			args: []string{"--xpath", "//grade", "--tree-format", "yaml"},
			want: "tag: grade\ntext: A\ntag: grade\ntext: B\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, _, err := execute(t, append([]string{"read", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()
	csvPath := writeFile(t, "grades.csv", gradesCSV)
	xmlPath := writeFile(t, "school.xml", schoolXML)
	badXML := writeFile(t, "bad.xml", "<a><b></a>")
	tests := map[string]struct {
		args   []string
		target error
		substr string
	}{
		"unsupported extension": {
			args:   []string{"read", writeFile(t, "notes.json", "{}")},
			target: fread.ErrUnsupportedFormat,
		},
		"missing file": {
			args:   []string{"read", filepath.Join(t.TempDir(), "missing.csv")},
			target: fs.ErrNotExist,
		},
		"malformed markup": {
			args:   []string{"read", badXML},
			target: fread.ErrParse,
		},
		"bad query": {
			args:   []string{"read", csvPath, "--where", ".Grade =="},
			target: query.ErrInvalidQuery,
		},
		"bad xpath": {
			args:   []string{"read", xmlPath, "--xpath", "//["},
			target: fread.ErrInvalidArgument,
		},
		"xpath on records": {
			args:   []string{"read", csvPath, "--xpath", "//a"},
			substr: "--xpath applies to markup files",
		},
		"where on tree": {
			args:   []string{"read", xmlPath, "--where", "true"},
			substr: "--where applies to delimited files",
		},
		"no xpath match": {
			args:   []string{"read", xmlPath, "--xpath", "//teacher"},
			substr: "no elements match",
		},
		"unknown format": {
			args:   []string{"read", csvPath, "--format", "xml"},
			substr: "unsupported format",
		},
		"unknown border": {
			args:   []string{"read", csvPath, "--border", "dotted"},
			substr: "border",
		},
		"unknown tree format": {
			args:   []string{"read", xmlPath, "--tree-format", "table"},
			substr: "tree format",
		},
		"missing argument": {
			args:   []string{"read"},
			substr: "arg",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
			}
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestMail(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "grades.csv", gradesCSV)
	out, _, err := execute(t, "mail", path, "--quiet")
	require.NoError(t, err)
	want := strings.Join([]string{
		"From: teacher@school.com",
		"To: alice@school.com",
		"Subject: Your Grades Report",
		"Body: Hello Alice, here are your grades: {Name: Alice, Grade: A}",
		"",
		"From: teacher@school.com",
		"To: bob@school.com",
		"Subject: Your Grades Report",
		"Body: Hello Bob, here are your grades: {Name: Bob, Grade: B}",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestMailOptions(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "grades.csv", gradesCSV)
	out, _, err := execute(t, "mail", path,
		"--from", "office@school.com",
		"--subject", `Grade {{.Get "Grade"}}`,
		"--body", "hi",
		"--where", `.Name == "Bob"`,
		"--format", "jsonl",
	)
	require.NoError(t, err)
	assert.Equal(t, `{"from":"office@school.com","to":"bob@school.com","subject":"Grade B","body":"hi"}`+"\n", out)
}

func TestMailDocumentFormats(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "grades.csv", gradesCSV)

	out, _, err := execute(t, "mail", path, "--format", "json", "--quiet")
	require.NoError(t, err)
	var msgs []envelope.Message
	require.NoError(t, json.Unmarshal([]byte(out), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "alice@school.com", msgs[0].To)
	assert.Equal(t, "bob@school.com", msgs[1].To)

	out, _, err = execute(t, "mail", path, "--format", "yaml", "--quiet")
	require.NoError(t, err)
	msgs = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, envelope.DefaultSubject, msgs[1].Subject)
}

func TestMailRejectsFormatBeforeReading(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "missing.csv")
	for _, format := range []string{"markdown", "table", "csv", "tsv", "html", "list"} {
		_, _, err := execute(t, "mail", missing, "--format", format)
		require.ErrorIs(t, err, render.ErrUnsupportedFormat, format)
		assert.NotErrorIs(t, err, fs.ErrNotExist, format)
	}
}

func TestMailErrors(t *testing.T) {
	t.Parallel()
	csvPath := writeFile(t, "grades.csv", gradesCSV)
	xmlPath := writeFile(t, "school.xml", schoolXML)

	_, _, err := execute(t, "mail", xmlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimited")

	_, _, err = execute(t, "mail", csvPath, "--to", "{{.Get")
	require.Error(t, err)

	_, _, err = execute(t, "mail", csvPath, "--format", "nope")
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "formats")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "files:   .csv .tsv .xml", lines[0])
	assert.Contains(t, lines[1], "fields table markdown")
	assert.Contains(t, lines[1], "go-template=<tmpl>")
	assert.Equal(t, "trees:   text json yaml", lines[2])
}

func TestConfigFile(t *testing.T) {
	t.Parallel()
	csvPath := writeFile(t, "grades.csv", gradesCSV)
	cfgPath := writeFile(t, "fread.yaml", "read:\n  format: list\nmail:\n  from: office@school.com\n  format: env\n")

	out, _, err := execute(t, "--config", cfgPath, "read", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Alice\nA\nBob\nB\n", out)

	out, _, err = execute(t, "--config", cfgPath, "read", csvPath, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, gradesCSV, out, "flags override the file")

	out, _, err = execute(t, "--config", cfgPath, "--quiet", "mail", csvPath, "--where", `.Name == "Alice"`)
	require.NoError(t, err)
	assert.Contains(t, out, "FROM=office@school.com\n")

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "formats")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	csvPath := writeFile(t, "grades.csv", gradesCSV)
	t.Setenv("FREAD_FORMAT", "tsv")
	out, _, err := execute(t, "read", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Name\tGrade\nAlice\tA\nBob\tB\n", out)
}

func TestLogging(t *testing.T) {
	t.Parallel()
	csvPath := writeFile(t, "grades.csv", gradesCSV)

	_, errOut, err := execute(t, "--log-level", "debug", "--log-format", "json", "read", csvPath)
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"dispatching"`)

	logPath := filepath.Join(t.TempDir(), "logs", "fread.log")
	_, errOut, err = execute(t, "--log-level", "debug", "--log-file", logPath, "read", csvPath)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=dispatching")

	_, errOut, err = execute(t, "--quiet", "mail", csvPath)
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, _, err = execute(t, "--log-level", "loud", "formats")
	require.Error(t, err)

	_, _, err = execute(t, "--log-format", "xml", "formats")
	require.Error(t, err)
}

// openHandles counts this process's open descriptors that point at path.
func openHandles(t *testing.T, path string) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("open descriptors are not listed on this platform")
	}
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == resolved {
			n++
		}
	}
	return n
}

func TestLogFileClosed(t *testing.T) {
	t.Parallel()
	csvPath := writeFile(t, "grades.csv", gradesCSV)
	tests := map[string]struct {
		args    []string
		wantErr require.ErrorAssertionFunc
	}{
		"success":        {args: []string{"read", csvPath}, wantErr: require.NoError},
		"missing file":   {args: []string{"read", filepath.Join(t.TempDir(), "missing.csv")}, wantErr: require.Error},
		"unknown format": {args: []string{"read", csvPath, "--format", "xml"}, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			logPath := filepath.Join(t.TempDir(), "fread.log")
			_, _, err := execute(t, append([]string{"--log-level", "debug", "--log-file", logPath}, tt.args...)...)
			tt.wantErr(t, err)
			require.FileExists(t, logPath)
			assert.Zero(t, openHandles(t, logPath))
		})
	}
}

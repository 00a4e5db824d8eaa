package csvfile

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pcsv "salesclean/internal/parser/csv"
	"salesclean/internal/records"
)

func TestWrite_HeaderOrderAndCRLF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	ds := records.Dataset{
		records.FromPairs("product_name", "Widget", "price", "19.99", "quantity", "5"),
		// Same key set, different order: cells follow the header.
		records.FromPairs("quantity", "2", "product_name", "Gadget", "price", "0"),
	}

	require.NoError(t, Write(path, ds, Options{}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"product_name,price,quantity\r\nWidget,19.99,5\r\nGadget,0,2\r\n",
		string(got),
	)
}

func TestWrite_LFOption(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	ds := records.Dataset{records.FromPairs("a", "1")}

	require.NoError(t, Write(path, ds, Options{LF: true}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(got))
}

func TestWrite_QuotesFieldsThatNeedIt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ds := records.Dataset{records.FromPairs("name", "Bolt, large", "note", `say "hi"`)}
	require.NoError(t, Encode(&buf, ds, Options{LF: true}))
	assert.Equal(t, "name,note\n\"Bolt, large\",\"say \"\"hi\"\"\"\n", buf.String())
}

// TestEncode_EmbeddedNewline pins how a newline inside a cell is written: the
// cell is quoted and, with CRLF records, the newline itself becomes "\r\n".
func TestEncode_EmbeddedNewline(t *testing.T) {
	t.Parallel()

	ds := records.Dataset{records.FromPairs("a", "line1\nline2")}

	var crlf, lf bytes.Buffer
	require.NoError(t, Encode(&crlf, ds, Options{}))
	require.NoError(t, Encode(&lf, ds, Options{LF: true}))

	assert.Equal(t, "a\r\n\"line1\r\nline2\"\r\n", crlf.String())
	assert.Equal(t, "a\n\"line1\nline2\"\n", lf.String())
}

func TestWrite_EmptyDatasetCreatesNoFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")

	for _, ds := range []records.Dataset{nil, {}} {
		err := Write(path, ds, Options{})
		require.ErrorIs(t, err, ErrNothingToSave)
		_, statErr := os.Stat(path)
		assert.ErrorIs(t, statErr, fs.ErrNotExist)
	}
}

func TestWrite_SchemaMismatchCreatesNoFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		second  *records.Row
		wantMsg string
	}{
		{name: "missing_key", second: records.FromPairs("a", "1"), wantMsg: `row 1 missing key "b"`},
		{name: "extra_key", second: records.FromPairs("a", "1", "b", "2", "c", "3"), wantMsg: `row 1 has extra key "c"`},
		{name: "renamed_key", second: records.FromPairs("a", "1", "x", "2"), wantMsg: `row 1 missing key "b"`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.csv")
			ds := records.Dataset{records.FromPairs("a", "1", "b", "2"), tc.second}

			err := Write(path, ds, Options{})
			require.ErrorIs(t, err, ErrSchemaMismatch)
			assert.Contains(t, err.Error(), tc.wantMsg)

			_, statErr := os.Stat(path)
			assert.ErrorIs(t, statErr, fs.ErrNotExist)
		})
	}
}

func TestCheckSchema_ExtraKeyReported(t *testing.T) {
	t.Parallel()

	ds := records.Dataset{
		records.FromPairs("a", "1"),
		records.FromPairs("a", "1"),
		records.FromPairs("a", "1", "z", "9"),
	}
	err := CheckSchema(ds)
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), `row 2 has extra key "z"`)
}

func TestWrite_MissingDirectoryIsIOError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv")
	err := Write(path, records.Dataset{records.FromPairs("a", "1")}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrSchemaMismatch)
}

func TestWrite_OverwritesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer\r\n"), 0o644))

	require.NoError(t, Write(path, records.Dataset{records.FromPairs("a", "1")}, Options{}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\n1\r\n", string(got))
}

/*
TestWrite_RoundTripThroughLoader writes a dataset and reads it back with the
loader; cells and key order must survive unchanged.
*/
func TestWrite_RoundTripThroughLoader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	ds := records.Dataset{
		records.FromPairs("product_name", "Widget", "category", "Tools, hand", "price", "0", "quantity", "5"),
		records.FromPairs("product_name", "Unknown", "category", "Unknown", "price", "1e3", "quantity", "1_000"),
	}
	require.NoError(t, Write(path, ds, Options{}))

	back, err := pcsv.Load(path)
	require.NoError(t, err)
	assert.True(t, ds.Equal(back))
}

package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/vibe-sv/internal/vcf"
)

const header = "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"

func vcfLine(cols ...string) string {
	return strings.Join(cols, "\t") + "\n"
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// writeList writes a file list naming paths.
func writeList(t *testing.T, dir string, paths ...string) string {
	t.Helper()
	return writeFile(t, dir, "files.txt", strings.Join(paths, "\n")+"\n")
}

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return p
}

func TestReadGroupedVariants_TwoFilesSameGraph(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.vcf", header+vcfLine("chr1", "100", "a1", "N", "<DEL>", ".", "PASS", "SVLEN=-50"))
	b := writeFile(t, dir, "b.vcf", header+vcfLine("chr1", "110", "b1", "N", "<DEL>", ".", "PASS", "SVLEN=-45"))
	list := writeList(t, dir, a, b)

	c := NewCollector(vcf.GraphOptions{UseType: true})
	groups, err := c.ReadGroupedVariants(list)
	require.NoError(t, err)

	require.Len(t, groups, 1)
	g := groups["chr1_DEL"]
	require.Len(t, g, 2)
	assert.Equal(t, Variant{Sample: 0, ID: "a1", Start: 100, End: 50, GraphID: "chr1_DEL"}, g[0])
	assert.Equal(t, Variant{Sample: 1, ID: "b1", Start: 110, End: 65, GraphID: "chr1_DEL"}, g[1])
}

func TestReadGroupedVariants_Testdata(t *testing.T) {
	dir := t.TempDir()
	list := writeList(t, dir, testdataPath(t, "sv_a.vcf"), "", testdataPath(t, "sv_b.vcf"))

	t.Run("chromosome only", func(t *testing.T) {
		groups, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(list)
		require.NoError(t, err)

		assert.Equal(t, []string{"1", "2", "3"}, groups.Keys())
		assert.Equal(t, 5, groups.VariantCount())

		var ids []string
		for _, v := range groups["1"] {
			ids = append(ids, v.ID)
		}
		assert.Equal(t, []string{"svA1", "svA2", "svB1"}, ids)
	})

	t.Run("type and strand", func(t *testing.T) {
		groups, err := NewCollector(vcf.GraphOptions{UseType: true, UseStrand: true}).ReadGroupedVariants(list)
		require.NoError(t, err)

		assert.Equal(t, []string{"1_DEL_+-", "1_INS_+-", "2_DEL_+-", "3_INV_++"}, groups.Keys())
		assert.Len(t, groups["1_DEL_+-"], 2)
		assert.Equal(t, Variant{Sample: 0, ID: "svA2", Start: 2000, End: 2006, GraphID: "1_INS_+-"}, groups["1_INS_+-"][0])
		assert.Equal(t, Variant{Sample: 0, ID: "svA3", Start: 3000, End: 2995, GraphID: "2_DEL_+-"}, groups["2_DEL_+-"][0])
		assert.Equal(t, Variant{Sample: 1, ID: "svB2", Start: 500, End: 1700, GraphID: "3_INV_++"}, groups["3_INV_++"][0])
	})
}

func TestReadGroupedVariants_MalformedLineAborts(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.vcf", header+vcfLine("1", "100", "g1", "A", "AT", ".", ".", "."))
	bad := writeFile(t, dir, "bad.vcf", header+
		vcfLine("1", "100", "b1", "A", "AT", ".", ".", ".")+
		vcfLine("1", "200", "b2", "A", "AT", "."))
	list := writeList(t, dir, good, bad)

	groups, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(list)
	require.Error(t, err)
	assert.ErrorIs(t, err, vcf.ErrMalformedRecord)
	assert.Nil(t, groups)
	assert.Contains(t, err.Error(), "bad.vcf")
}

func TestReadGroupedVariants_InvalidPositionAborts(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.vcf", header+vcfLine("1", "1OO", "b1", "A", "AT", ".", ".", "."))

	groups, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(writeList(t, dir, bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, vcf.ErrInvalidPosition)
	assert.Nil(t, groups)
}

func TestReadGroupedVariants_MissingFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(filepath.Join(dir, "nolist.txt"))
	assert.ErrorIs(t, err, vcf.ErrMissingFile)

	list := writeList(t, dir, filepath.Join(dir, "gone.vcf"))
	_, err = NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(list)
	assert.ErrorIs(t, err, vcf.ErrMissingFile)
}

func TestReadGroupedVariants_HeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.vcf", header)
	a := writeFile(t, dir, "a.vcf", header+vcfLine("1", "100", "a1", "A", "AT", ".", ".", "."))

	groups, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(writeList(t, dir, empty, a))
	require.NoError(t, err)
	require.Len(t, groups["1"], 1)
	// The second file in the list is sample 1 even when the first had no records.
	assert.Equal(t, 1, groups["1"][0].Sample)
}

func TestReadFiles_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		var b strings.Builder
		b.WriteString(header)
		for j := 0; j < 20; j++ {
			chrom := fmt.Sprintf("%d", j%3+1)
			b.WriteString(vcfLine(chrom, fmt.Sprintf("%d", 1000+j), fmt.Sprintf("s%d_%d", i, j), "A", "ACGT", ".", ".", "STRANDS=+-"))
		}
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("s%d.vcf", i), b.String()))
	}

	opts := vcf.GraphOptions{UseType: true, UseStrand: true}
	seq, err := NewCollector(opts).ReadFiles(paths)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 4, 32} {
		c := NewCollector(opts)
		c.SetWorkers(workers)
		par, err := c.ReadFiles(paths)
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestReadFiles_ParallelError(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 6; i++ {
		content := header + vcfLine("1", "100", "ok", "A", "AT", ".", ".", ".")
		if i == 3 {
			content += "1\t2\t3\n"
		}
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%d.vcf", i), content))
	}

	c := NewCollector(vcf.GraphOptions{})
	c.SetWorkers(3)
	groups, err := c.ReadFiles(paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, vcf.ErrMalformedRecord)
	assert.Nil(t, groups)
}

func TestReadFile_LogsCount(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	c := NewCollector(vcf.GraphOptions{})
	c.SetLogger(zap.New(core))
	_, err := c.ReadFile(testdataPath(t, "sv_a.vcf"), 0)
	require.NoError(t, err)

	entries := logs.FilterMessage("read variants").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["variants"])
}

func TestGroups_MergeAndKeys(t *testing.T) {
	a := Groups{}
	a.Add(Variant{Sample: 0, ID: "x", GraphID: "b"})
	a.Add(Variant{Sample: 0, ID: "y", GraphID: "a"})

	b := Groups{}
	b.Add(Variant{Sample: 1, ID: "z", GraphID: "b"})
	b.Add(Variant{Sample: 1, ID: "w", GraphID: "c"})

	a.Merge(b)
	assert.Equal(t, []string{"a", "b", "c"}, a.Keys())
	assert.Equal(t, "x", a["b"][0].ID)
	assert.Equal(t, "z", a["b"][1].ID)
	assert.Equal(t, 4, a.VariantCount())
}

func TestNewVariant(t *testing.T) {
	rec, err := vcf.ParseRecord(strings.TrimSuffix(vcfLine("chr5", "1000", "v", "A", "ACGTACGT", ".", ".", "STRANDS=-+"), "\n"))
	require.NoError(t, err)

	v, err := NewVariant(rec, 4, vcf.GraphOptions{UseStrand: true})
	require.NoError(t, err)
	assert.Equal(t, Variant{Sample: 4, ID: "v", Start: 1000, End: 1007, GraphID: "chr5_-+"}, v)
}

func TestReadGroupedVariants_UnreadableEntries(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "calls")
	require.NoError(t, os.Mkdir(sub, 0o755))

	t.Run("directory in list", func(t *testing.T) {
		groups, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(writeList(t, dir, sub))
		require.Error(t, err)
		assert.ErrorIs(t, err, vcf.ErrMissingFile)
		assert.Nil(t, groups)
	})

	t.Run("list is a directory", func(t *testing.T) {
		_, err := NewCollector(vcf.GraphOptions{}).ReadGroupedVariants(sub)
		assert.ErrorIs(t, err, vcf.ErrMissingFile)

		_, err = CountFiles(sub)
		assert.ErrorIs(t, err, vcf.ErrMissingFile)
	})
}

func TestReadFileList_KeepsPathsVerbatim(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "files.txt", "a.vcf\r\n\n b.vcf \n\r\n  \nc.vcf")

	paths, err := ReadFileList(list)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.vcf", " b.vcf ", "  ", "c.vcf"}, paths)

	n, err := CountFiles(list)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

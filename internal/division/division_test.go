package division

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonstrip/internal/formatter"
	"github.com/mcncl/jsonstrip/internal/stripper"
)

const codeList = "\ufeff北京市 110000\n" +
	"市辖区 110100\n" +
	"东城区 110101\n" +
	"河北省 130000\n" +
	"石家庄市 130100\n" +
	"长安区 130102\n" +
	"139001 定州市\n" +
	"唐山市 130200\n" +
	"路南区 130202\n" +
	"山西省 140000\n" +
	"太原市 150100\n" +
	"小店区 140105\n" +
	"bad line here\n" +
	"\n" +
	"上海市 310000\n" +
	"长三角一体化示范区 310052\n" +
	"abc 12345\n"

func ids(areas []*Area) []string {
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		out = append(out, a.ID)
	}
	return out
}

func parseSample(t *testing.T) *Tree {
	t.Helper()
	tree, err := Parse(strings.NewReader(codeList))
	require.NoError(t, err)
	return tree
}

func TestParse_Hierarchy(t *testing.T) {
	tree := parseSample(t)

	require.Equal(t, []string{"110000", "130000", "140000", "310000"}, ids(tree.Provinces))
	assert.Equal(t, "北京市", tree.Provinces[0].Name)

	beijing := tree.Provinces[0]
	assert.Equal(t, []string{"110101"}, ids(beijing.Children), "municipality prefectures are skipped")

	hebei := tree.Provinces[1]
	assert.Equal(t, []string{"130100", "139001", "130200"}, ids(hebei.Children))
	assert.Equal(t, []string{"130102"}, ids(hebei.Children[0].Children))
	assert.Empty(t, hebei.Children[1].Children)
	assert.Equal(t, "定州市", hebei.Children[1].Name, "numeric first field is swapped")
	assert.Equal(t, []string{"130202"}, ids(hebei.Children[2].Children))

	assert.Empty(t, tree.Provinces[2].Children)
	assert.Equal(t, []string{"310052"}, ids(tree.Provinces[3].Children))

	assert.Equal(t, []string{"太原市 150100", "小店区 140105", "abc 12345"}, tree.Unmatched)
}

func TestParse_LinesBeforeAnyProvinceAreSkipped(t *testing.T) {
	tree, err := Parse(strings.NewReader("石家庄市 130100\n长安区 130102\n河北省 130000\n"))
	require.NoError(t, err)

	require.Equal(t, []string{"130000"}, ids(tree.Provinces))
	assert.Empty(t, tree.Provinces[0].Children)
	assert.Empty(t, tree.Unmatched)
}

func TestParse_Empty(t *testing.T) {
	tree, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tree.Provinces)
}

func TestIsMunicipality(t *testing.T) {
	for _, code := range []string{"110000", "120000", "310000", "500000"} {
		assert.True(t, IsMunicipality(code), code)
	}
	for _, code := range []string{"130000", "440000", "1", ""} {
		assert.False(t, IsMunicipality(code), code)
	}
}

func TestEnrich(t *testing.T) {
	tree := parseSample(t)
	index := tree.Enrich()

	assert.Len(t, index, 11)

	beijing := index["110000"]
	assert.Equal(t, "0", beijing.ParentID)
	assert.Equal(t, "0,", beijing.ParentIDs)
	assert.Equal(t, "", beijing.ParentNames)
	assert.Equal(t, "北京市", beijing.FullName)

	dongcheng := index["110101"]
	assert.Equal(t, "110000", dongcheng.ParentID)
	assert.Equal(t, "0,110000,", dongcheng.ParentIDs)
	assert.Equal(t, "北京市", dongcheng.ParentNames)
	assert.Equal(t, "北京市 东城区", dongcheng.FullName)

	changan := index["130102"]
	assert.Equal(t, "130100", changan.ParentID)
	assert.Equal(t, "0,130000,130100,", changan.ParentIDs)
	assert.Equal(t, "河北省 石家庄市", changan.ParentNames)
	assert.Equal(t, "河北省 石家庄市 长安区", changan.FullName)

	dingzhou := index["139001"]
	assert.Equal(t, "130000", dingzhou.ParentID)
	assert.Equal(t, "河北省 定州市", dingzhou.FullName)
}

func TestToValue(t *testing.T) {
	tree, err := Parse(strings.NewReader("北京市 110000\n东城区 110101\n"))
	require.NoError(t, err)
	tree.Enrich()

	out, err := formatter.NewFormatter(2).Format(ToValue(tree.Provinces, KeyStyleCamel))
	require.NoError(t, err)

	expected := `[
  {
    "id": "110000",
    "name": "北京市",
    "parentId": "0",
    "parentIds": "0,",
    "parentNames": "",
    "fullName": "北京市",
    "children": [
      {
        "id": "110101",
        "name": "东城区",
        "parentId": "110000",
        "parentIds": "0,110000,",
        "parentNames": "北京市",
        "fullName": "北京市 东城区"
      }
    ]
  }
]`
	assert.Equal(t, expected, string(out))
}

func TestToValue_KeyStyles(t *testing.T) {
	area := []*Area{{ID: "110000", Name: "北京市", ParentID: "0"}}

	tests := []struct {
		style    KeyStyle
		expected []string
	}{
		{KeyStyleCamel, []string{"id", "name", "parentId", "parentIds", "parentNames", "fullName"}},
		{KeyStyleSnake, []string{"id", "name", "parent_id", "parent_ids", "parent_names", "full_name"}},
		{KeyStyleKebab, []string{"id", "name", "parent-id", "parent-ids", "parent-names", "full-name"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			v := ToValue(area, tt.style)
			require.Equal(t, 1, v.Len())
			assert.Equal(t, tt.expected, v.Items()[0].Keys())
		})
	}
}

func TestParseKeyStyle(t *testing.T) {
	style, err := ParseKeyStyle("snake")
	require.NoError(t, err)
	assert.Equal(t, KeyStyleSnake, style)

	_, err = ParseKeyStyle("")
	assert.Error(t, err)
	_, err = ParseKeyStyle("Pascal")
	assert.Error(t, err)
}

func TestBuildThenStrip(t *testing.T) {
	tree := parseSample(t)
	tree.Enrich()

	stripped := stripper.New().Strip(ToValue(tree.Provinces, KeyStyleCamel))
	out, err := formatter.NewFormatter(0).Format(stripped)
	require.NoError(t, err)

	for _, field := range stripper.DefaultFields {
		assert.NotContains(t, string(out), `"`+field+`"`)
	}
	assert.Contains(t, string(out), `{"id":"110101","name":"东城区","parentId":"110000"}`)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.txt")
	require.NoError(t, os.WriteFile(path, []byte(codeList), 0o644))

	tree, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, tree.Provinces, 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, os.IsNotExist(err))
}

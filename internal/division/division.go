// Package division builds the administrative division tree from a code list.
//
// The input has one "name code" pair per line, for example
//
//	北京市 110000
//	市辖区 110100
//	东城区 110101
//
// Codes are six digits: XX0000 is a province level area, XXXX00 a
// prefecture and anything else a county. The four municipalities have no
// prefecture level, so their counties hang directly off the province.
package division

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/jsonstrip/internal/models"
)

// RootID is the id of the virtual node above all provinces
const RootID = "0"

const codeLength = 6

// municipalities are the province prefixes without a prefecture level
var municipalities = map[string]bool{
	"11": true, // 北京
	"12": true, // 天津
	"31": true, // 上海
	"50": true, // 重庆
}

// Area is one node of the division tree
type Area struct {
	ID          string
	Name        string
	ParentID    string
	ParentIDs   string
	ParentNames string
	FullName    string
	Children    []*Area
}

// Tree is the result of parsing a code list
type Tree struct {
	Provinces []*Area
	// Unmatched holds lines that looked valid but could not be placed
	Unmatched []string
}

// IsMunicipality reports whether a province code belongs to a municipality
func IsMunicipality(code string) bool {
	return len(code) >= 2 && municipalities[code[:2]]
}

// ParseFile parses the code list at path
func ParseFile(path string) (*Tree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads a code list and arranges it into a tree.
// Blank lines and lines without exactly two fields are skipped.
func Parse(r io.Reader) (*Tree, error) {
	tree := &Tree{}
	var province, prefecture *Area

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		name, code := parts[0], parts[1]
		if isDigits(name) {
			name, code = code, name
		}
		if len(code) != codeLength || !isDigits(code) {
			tree.Unmatched = append(tree.Unmatched, line)
			continue
		}

		switch {
		case strings.HasSuffix(code, "0000"):
			province = &Area{ID: code, Name: name}
			tree.Provinces = append(tree.Provinces, province)
			prefecture = nil

		case strings.HasSuffix(code, "00"):
			if province == nil || IsMunicipality(province.ID) {
				continue
			}
			if code[:2] != province.ID[:2] {
				tree.Unmatched = append(tree.Unmatched, line)
				continue
			}
			prefecture = &Area{ID: code, Name: name}
			province.Children = append(province.Children, prefecture)

		default:
			if province == nil {
				continue
			}
			area := &Area{ID: code, Name: name}
			switch {
			case IsMunicipality(province.ID):
				province.Children = append(province.Children, area)
			case prefecture != nil && code[:4] == prefecture.ID[:4]:
				prefecture.Children = append(prefecture.Children, area)
			case prefecture != nil:
				// county administered directly by the province
				province.Children = append(province.Children, area)
			default:
				tree.Unmatched = append(tree.Unmatched, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read code list: %w", err)
	}
	return tree, nil
}

// Enrich fills in the ancestry fields of every area and returns the areas
// indexed by id.
func (t *Tree) Enrich() map[string]*Area {
	index := make(map[string]*Area)
	enrich(index, t.Provinces, &Area{ID: RootID})
	return index
}

func enrich(index map[string]*Area, areas []*Area, parent *Area) {
	for _, area := range areas {
		parentNames := parent.Name
		if parent.ParentNames != "" {
			parentNames = parent.ParentNames + " " + parent.Name
		}
		fullName := area.Name
		if parentNames != "" {
			fullName = parentNames + " " + area.Name
		}

		area.ParentID = parent.ID
		area.ParentIDs = parent.ParentIDs + parent.ID + ","
		area.ParentNames = strings.TrimSpace(parentNames)
		area.FullName = strings.TrimSpace(fullName)

		index[area.ID] = area
		enrich(index, area.Children, area)
	}
}

// KeyStyle selects how member names are written
type KeyStyle string

const (
	KeyStyleCamel KeyStyle = "camel"
	KeyStyleSnake KeyStyle = "snake"
	KeyStyleKebab KeyStyle = "kebab"
)

// ParseKeyStyle validates a key style name
func ParseKeyStyle(s string) (KeyStyle, error) {
	switch style := KeyStyle(s); style {
	case KeyStyleCamel, KeyStyleSnake, KeyStyleKebab:
		return style, nil
	default:
		return "", fmt.Errorf("unknown key style %q", s)
	}
}

func (k KeyStyle) key(name string) string {
	switch k {
	case KeyStyleSnake:
		return strcase.ToSnake(name)
	case KeyStyleKebab:
		return strcase.ToKebab(name)
	default:
		return name
	}
}

// ToValue renders areas as a JSON array. Leaves have no children member.
func ToValue(areas []*Area, style KeyStyle) models.Value {
	items := make([]models.Value, 0, len(areas))
	for _, area := range areas {
		items = append(items, area.toValue(style))
	}
	return models.Array(items...)
}

func (a *Area) toValue(style KeyStyle) models.Value {
	members := []models.Member{
		{Key: style.key("id"), Value: models.String(a.ID)},
		{Key: style.key("name"), Value: models.String(a.Name)},
		{Key: style.key("parentId"), Value: models.String(a.ParentID)},
		{Key: style.key("parentIds"), Value: models.String(a.ParentIDs)},
		{Key: style.key("parentNames"), Value: models.String(a.ParentNames)},
		{Key: style.key("fullName"), Value: models.String(a.FullName)},
	}
	if len(a.Children) > 0 {
		members = append(members, models.Member{Key: style.key("children"), Value: ToValue(a.Children, style)})
	}
	return models.Object(members...)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

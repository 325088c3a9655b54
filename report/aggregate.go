package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	fs "github.com/dreitier/treelist/storage/fs"
	"gopkg.in/yaml.v3"
)

// Group is the unit-converted size of all files sharing a group key
type Group struct {
	Key  string
	Size float64
}

// Groups is ordered ascending by key and serializes as a mapping in that order
type Groups []Group

// GroupKey truncates the path of a file to its first depth segments. A depth of 0 (or less) and paths with fewer
// segments than depth use the full path.
func GroupKey(path string, depth int) string {
	if depth <= 0 {
		return path
	}

	segments := strings.Split(path, fs.Separator)

	if len(segments) > depth {
		segments = segments[:depth]
	}

	return strings.Join(segments, fs.Separator)
}

// GroupByDepth sums the byte sizes of all files by their group key. Directory entries do not form groups.
func GroupByDepth(entries []fs.Entry, depth int) map[string]int64 {
	grouped := make(map[string]int64)

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}

		grouped[GroupKey(entry.Path, depth)] += entry.Size
	}

	return grouped
}

// Aggregate groups the files by depth, converts every sum to the given unit and sorts the result by key
func Aggregate(entries []fs.Entry, depth int, unit Unit) Groups {
	grouped := GroupByDepth(entries, depth)
	groups := make(Groups, 0, len(grouped))

	for key, size := range grouped {
		groups = append(groups, Group{Key: key, Size: Convert(size, unit)})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})

	return groups
}

func (g Groups) Total() float64 {
	var total float64

	for _, group := range g {
		total += group.Size
	}

	return total
}

// Lookup returns the size of the group with the given key
func (g Groups) Lookup(key string) (float64, bool) {
	i := sort.Search(len(g), func(i int) bool { return g[i].Key >= key })

	if i < len(g) && g[i].Key == key {
		return g[i].Size, true
	}

	return 0, false
}

func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(group.Key)
		if err != nil {
			return nil, err
		}

		size, err := json.Marshal(group.Size)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", group.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(size)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (g Groups) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, group := range g {
		node.Content = append(node.Content,
			// keys like "2023" must stay strings
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: group.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(group.Size, 'f', -1, 64)},
		)
	}

	return node, nil
}

// Summarize prints one line per group with two decimal digits, followed by the total
func Summarize(w io.Writer, groups Groups, unit Unit, totalBytes int64) error {
	if _, err := fmt.Fprintf(w, "\nDirectory sizes (%s):\n", unit); err != nil {
		return err
	}

	for _, group := range groups {
		if _, err := fmt.Fprintf(w, "%s: %.2f\n", group.Key, group.Size); err != nil {
			return err
		}
	}

	human := "0B"
	if totalBytes > 0 {
		human = bytefmt.ByteSize(uint64(totalBytes))
	}

	_, err := fmt.Fprintf(w, "Total: %.2f (%s in %d groups)\n", groups.Total(), human, len(groups))

	return err
}

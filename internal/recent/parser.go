package recent

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/strrl/jb-recent/pkg/models"
)

// HomePlaceholder is written by the IDEs in place of the user's home directory
const HomePlaceholder = "$USER_HOME$"

const (
	optionRecentPaths    = "recentPaths"
	optionAdditionalInfo = "additionalInfo"
	optionOpenTimestamp  = "projectOpenTimestamp"
)

var (
	errNoComponent  = errors.New("document has no component element")
	errTrailingData = errors.New("junk after document element")
)

// node is a generic element; the record format is addressed by position, so
// every child is kept in document order
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) first() (node, bool) {
	if len(n.Children) == 0 {
		return node{}, false
	}
	return n.Children[0], true
}

// Reader parses record files, logging skipped values to Logger
type Reader struct {
	Home   string
	Logger *slog.Logger
}

// ParseFile reads an IDE record file with the default logger, see Parse
func ParseFile(path, home string) ([]models.RecentProjectRecord, error) {
	return Reader{Home: home}.ReadFile(path)
}

// Parse reads a record document with the default logger, see Reader.Read
func Parse(r io.Reader, home string) ([]models.RecentProjectRecord, error) {
	return Reader{Home: home}.Read(r)
}

// ReadFile reads an IDE record file, see Read
func (rd Reader) ReadFile(path string) ([]models.RecentProjectRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	records, err := rd.Read(f)
	if err != nil {
		var malformed *MalformedRecordError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	return records, nil
}

// Read extracts every recent project path and its last open timestamp.
// Paths listed under recentPaths start at timestamp 0; a
// projectOpenTimestamp found under additionalInfo overrides it and adds the
// path if recentPaths did not list it. $USER_HOME$ is replaced with Home.
// Records come back in first-seen order.
func (rd Reader) Read(r io.Reader) ([]models.RecentProjectRecord, error) {
	dec := xml.NewDecoder(r)
	var root node
	if err := dec.Decode(&root); err != nil {
		return nil, &MalformedRecordError{Err: err}
	}
	if err := expectEOF(dec); err != nil {
		return nil, &MalformedRecordError{Err: err}
	}
	component, ok := root.first()
	if !ok {
		return nil, &MalformedRecordError{Err: errNoComponent}
	}

	timestamps := newOrderedTimestamps()
	var additionalInfo *node

	for _, option := range component.Children {
		name, _ := option.attr("name")
		switch name {
		case optionRecentPaths:
			list, ok := option.first()
			if !ok {
				continue
			}
			for _, entry := range list.Children {
				if value, ok := entry.attr("value"); ok {
					timestamps.set(value, 0)
				}
			}
		case optionAdditionalInfo:
			if m, ok := option.first(); ok {
				additionalInfo = &m
			}
		}
	}

	if additionalInfo != nil {
		for _, entry := range additionalInfo.Children {
			key, ok := entry.attr("key")
			if !ok {
				continue
			}
			if ts, ok := openTimestamp(entry, rd.logger()); ok {
				timestamps.set(key, ts)
			}
		}
	}

	records := make([]models.RecentProjectRecord, 0, len(timestamps.paths))
	for _, path := range timestamps.paths {
		records = append(records, models.RecentProjectRecord{
			Path:      strings.ReplaceAll(path, HomePlaceholder, rd.Home),
			Timestamp: timestamps.values[path],
		})
	}
	return records, nil
}

// openTimestamp reads entry > value > RecentProjectMetaInfo > option[name=projectOpenTimestamp]
func openTimestamp(entry node, logger *slog.Logger) (int64, bool) {
	value, ok := entry.first()
	if !ok {
		return 0, false
	}
	meta, ok := value.first()
	if !ok {
		return 0, false
	}
	for _, option := range meta.Children {
		if option.XMLName.Local != "option" {
			continue
		}
		if name, _ := option.attr("name"); name != optionOpenTimestamp {
			continue
		}
		raw, _ := option.attr("value")
		ts, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			logger.Debug("ignoring unparsable project timestamp", "value", raw, "error", err)
			return 0, false
		}
		return ts, true
	}
	return 0, false
}

func (rd Reader) logger() *slog.Logger {
	if rd.Logger != nil {
		return rd.Logger
	}
	return slog.Default()
}

// expectEOF accepts only whitespace, comments and processing instructions
// after the root element
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return errTrailingData
			}
		default:
			return errTrailingData
		}
	}
}

type orderedTimestamps struct {
	paths  []string
	values map[string]int64
}

func newOrderedTimestamps() *orderedTimestamps {
	return &orderedTimestamps{values: make(map[string]int64)}
}

func (o *orderedTimestamps) set(path string, ts int64) {
	if _, ok := o.values[path]; !ok {
		o.paths = append(o.paths, path)
	}
	o.values[path] = ts
}

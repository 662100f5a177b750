package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/apiclient/internal/constants"
)

// nullTag is the YAML tag of an explicit null value.
const nullTag = "!!null"

// FileStorage persists values in a flat YAML mapping.
// Every read goes to disk, so values written by another process
// are visible on the next lookup.
type FileStorage struct {
	// path is the location of the storage file.
	path string
	// mu serialises read-modify-write cycles within the process.
	mu sync.Mutex
}

// NewFileStorage creates a file-backed storage. The file itself is created lazily on the first write.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	return &FileStorage{path: path}, nil
}

// Path returns the location of the storage file.
func (s *FileStorage) Path() string {
	return s.path
}

// Get returns the value stored under key. A missing file means every key is absent.
func (s *FileStorage) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	mapping, err := s.readMapping()
	if err != nil || mapping == nil {
		return "", false, err
	}

	valueNode := findValueNode(mapping, key)
	if valueNode == nil || valueNode.Tag == nullTag {
		return "", false, nil
	}

	if valueNode.Kind != yaml.ScalarNode {
		return "", false, fmt.Errorf("%w: value of '%s' is not a scalar", ErrMalformedStorage, key)
	}

	return valueNode.Value, true, nil
}

// Set stores value under key. Other keys, their order and comments are preserved.
func (s *FileStorage) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.readDocument()
	if err != nil {
		return err
	}

	if document == nil {
		document = newDocument()
	}

	setValueInNode(document.Content[0], key, value)

	return s.writeDocument(document)
}

// Remove deletes key. Nothing is written when the key is absent.
func (s *FileStorage) Remove(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.readDocument()
	if err != nil || document == nil {
		return err
	}

	if !removeKeyFromNode(document.Content[0], key) {
		return nil
	}

	return s.writeDocument(document)
}

// Keys lists the stored keys in file order.
func (s *FileStorage) Keys() ([]string, error) {
	mapping, err := s.readMapping()
	if err != nil || mapping == nil {
		return nil, err
	}

	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}

	return keys, nil
}

func (s *FileStorage) readMapping() (*yaml.Node, error) {
	document, err := s.readDocument()
	if err != nil || document == nil {
		return nil, err
	}

	return document.Content[0], nil
}

// readDocument parses the storage file. It returns nil without error when the file
// does not exist or is empty.
func (s *FileStorage) readDocument() (*yaml.Node, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil //nolint:nilnil // A missing file is an empty storage.
		}

		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil //nolint:nilnil // An empty file is an empty storage.
	}

	var document yaml.Node
	if err = yaml.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStorage, err)
	}

	// The root node is a document node, content[0] is the actual map.
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 || document.Content[0].Tag == nullTag {
		return nil, nil //nolint:nilnil // A document of comments only holds no values.
	}

	if document.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrMalformedStorage)
	}

	return &document, nil
}

// writeDocument replaces the storage file atomically: the new content goes to a
// temporary file in the same directory which is then renamed over the old one.
func (s *FileStorage) writeDocument(document *yaml.Node) error {
	content, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary storage file: %w", err)
	}

	tempPath := tempFile.Name()

	defer func() {
		// Best effort: the file is already gone after a successful rename.
		_ = os.Remove(tempPath)
	}()

	if _, err = tempFile.Write(content); err != nil {
		_ = tempFile.Close()

		return fmt.Errorf("failed to write storage file: %w", err)
	}

	if err = tempFile.Chmod(constants.SecretFilePermissions); err != nil {
		_ = tempFile.Close()

		return fmt.Errorf("failed to set storage file permissions: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close storage file: %w", err)
	}

	if err = os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}

	return nil
}

func newDocument() *yaml.Node {
	return &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			{Kind: yaml.MappingNode, Tag: "!!map"},
		},
	}
}

// findValueNode returns the value node for key, or nil.
// Key-value pairs are stored as alternating nodes.
func findValueNode(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}

	return nil
}

// setValueInNode updates key in place, keeping its comments, or appends a new pair.
func setValueInNode(mapping *yaml.Node, key, value string) {
	if valueNode := findValueNode(mapping, key); valueNode != nil {
		headComment, lineComment := valueNode.HeadComment, valueNode.LineComment

		*valueNode = *newStringNode(value)
		valueNode.HeadComment = headComment
		valueNode.LineComment = lineComment

		return
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		newStringNode(value))
}

// removeKeyFromNode drops the pair for key and reports whether it existed.
func removeKeyFromNode(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != key {
			continue
		}

		mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)

		return true
	}

	return false
}

// newStringNode quotes the value so tokens with special characters survive a round trip.
func newStringNode(value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
		Style: yaml.DoubleQuotedStyle,
	}
}

package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Value accepted by -scene
	DisplayName string `json:"displayName"` // UI display name
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the JSON file (json type only)
}

// ListScenes returns the built-in scenes followed by the JSON scene files in
// dir, sorted by display name. A missing directory yields only built-ins.
func ListScenes(dir string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(BuiltinNames()))
	for _, name := range BuiltinNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Type:        "builtin",
		})
	}

	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var found []SceneInfo
	for _, path := range files {
		found = append(found, sceneFileInfo(path))
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].DisplayName < found[j].DisplayName
	})

	return append(scenes, found...), nil
}

// sceneFileInfo reads the optional name field of a scene file, falling back
// to the file name
func sceneFileInfo(path string) SceneInfo {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          path,
		DisplayName: titleCase(base),
		Type:        "json",
		FilePath:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info
	}
	var header struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(data, &header) == nil && header.Name != "" {
		info.DisplayName = titleCase(header.Name)
	}
	return info
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}

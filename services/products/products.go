// Package products holds the static product reference table backing the
// lookup responder. The table is loaded once at process start and treated as
// read-only for the process lifetime.
package products

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/samber/mo"
)

// ReferenceEntry is one document attached to a product model: a description
// and one or more links.
type ReferenceEntry struct {
	Description string   `json:"描述"`
	Links       []string `json:"链接"`
}

// UnmarshalJSON accepts the link field as either a single string or a list,
// matching both shapes present in the reference data.
func (e *ReferenceEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description string          `json:"描述"`
		Links       json.RawMessage `json:"链接"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Description = raw.Description
	e.Links = nil

	if len(raw.Links) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw.Links, &single); err == nil {
		if single != "" {
			e.Links = []string{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(raw.Links, &many); err != nil {
		return fmt.Errorf("link field is neither a string nor a list: %w", err)
	}
	e.Links = many
	return nil
}

// ProductsService exposes the reference table and the system prompt rendered
// from it for the lookup responder.
type ProductsService struct {
	entries map[string][]ReferenceEntry
	prompt  string
}

// NewProductsService loads the JSON reference table from path. The table maps
// product model codes to their reference entries.
func NewProductsService(path string) (*ProductsService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product reference table: %w", err)
	}

	return NewProductsServiceFromJSON(data)
}

// NewProductsServiceFromJSON builds the service from raw JSON table bytes
func NewProductsServiceFromJSON(data []byte) (*ProductsService, error) {
	var entries map[string][]ReferenceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse product reference table: %w", err)
	}

	s := &ProductsService{entries: entries}
	s.prompt = s.renderSystemPrompt()

	log.Printf("✅ Loaded product reference table with %d models", len(entries))
	return s, nil
}

// GetEntriesByModel returns the reference entries for an exact model code
func (s *ProductsService) GetEntriesByModel(model string) mo.Option[[]ReferenceEntry] {
	entries, ok := s.entries[model]
	if !ok {
		return mo.None[[]ReferenceEntry]()
	}
	return mo.Some(entries)
}

// ModelCount returns the number of product models in the table
func (s *ProductsService) ModelCount() int {
	return len(s.entries)
}

// SystemPrompt returns the lookup responder's system prompt, rendered once at
// load time from the full reference table.
func (s *ProductsService) SystemPrompt() string {
	return s.prompt
}

func (s *ProductsService) renderSystemPrompt() string {
	models := make([]string, 0, len(s.entries))
	for model := range s.entries {
		models = append(models, model)
	}
	sort.Strings(models)

	var data strings.Builder
	for _, model := range models {
		fmt.Fprintf(&data, "型号: %s\n", model)
		for _, entry := range s.entries[model] {
			fmt.Fprintf(&data, "描述: %s\n链接: %s\n", entry.Description, strings.Join(entry.Links, ", "))
		}
	}

	return "你是产品资料助手。\n" +
		"以下是一些型号、描述和链接的数据：\n" +
		data.String() +
		"当用户输入请求时，你需要：\n" +
		"1. 提取用户输入中的型号并与数据中匹配，允许模糊匹配，确保型号部分匹配时也能识别（例如，'N58-CA-091AS1' 可以匹配到 'N58-CA'）。\n" +
		"2. 提取用户输入中的其他关键词（例如 'GPS功能' 或 '封装'），并在数据的描述中查找相关内容。\n" +
		"3. 在找到的描述中，优先返回包含关键字的描述和链接，避免冗余信息。\n" +
		"4. 如果找到一个链接，使用以下格式：\n" +
		"💾 资料链接: <链接>\n" +
		"5. 如果找到多个链接，使用以下格式：\n" +
		"💾 资料链接:\n" +
		"<链接1>\n" +
		"<链接2>\n" +
		"6. 如果无法找到完整匹配的记录，建议最相似的结果，确保用户获取到尽可能相关的信息。\n" +
		"7. 如果未找到任何匹配的资料，礼貌地告知用户。\n"
}

package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contracts/schemas"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи схем форм
const (
	ContactFormV1  = "ContactForm/1.0.0"
	FeedbackFormV1 = "FeedbackForm/1.0.0"
)

const schemasRoot = "forms"

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemas.SchemasFS, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemas.SchemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}
		compiledSchemas[generateKeyFromPath(path)] = schema
	}
}

// generateKeyFromPath: "forms/contact-form/v1.json" -> "ContactForm/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, schemasRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

// normalizers приводят документ формы к виду, который проверяет схема
var normalizers = map[string]func(doc map[string]interface{}){
	FeedbackFormV1: dropAnonymousContact,
}

// ValidateForm обрезает пробелы в строковых полях, нормализует тело под
// конкретную форму и проверяет его по схеме. Возвращает нормализованное тело.
// Ошибки структуры возвращаются как *domain.ValidationError с именами полей.
func ValidateForm(schemaKey string, body []byte) ([]byte, error) {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return nil, fmt.Errorf("schema '%s' not found", schemaKey)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &domain.ValidationError{Reason: "request body is not valid JSON"}
	}
	doc, isObject := v.(map[string]interface{})
	if !isObject {
		return nil, &domain.ValidationError{Reason: "request body must be a JSON object"}
	}

	for key, value := range doc {
		if str, isString := value.(string); isString {
			doc[key] = strings.TrimSpace(str)
		}
	}
	if normalize, ok := normalizers[schemaKey]; ok {
		normalize(doc)
	}

	if err := schema.Validate(doc); err != nil {
		var vErr *jsonschema.ValidationError
		if errors.As(err, &vErr) {
			return nil, &domain.ValidationError{Fields: invalidFields(vErr), Reason: "invalid fields"}
		}
		return nil, fmt.Errorf("JSON schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode normalized form: %w", err)
	}
	return normalized, nil
}

// dropAnonymousContact убирает контактные поля анонимного отзыва, их никто не проверяет и не отправляет
func dropAnonymousContact(doc map[string]interface{}) {
	if anonymous, _ := doc["anonymous"].(bool); anonymous {
		delete(doc, "name")
		delete(doc, "email")
		delete(doc, "phone")
	}
}

// invalidFields собирает имена полей верхнего уровня из листьев дерева ошибок.
func invalidFields(vErr *jsonschema.ValidationError) []string {
	seen := make(map[string]struct{})
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := strings.TrimPrefix(e.InstanceLocation, "/")
			if i := strings.Index(loc, "/"); i >= 0 {
				loc = loc[:i]
			}
			if loc != "" {
				seen[loc] = struct{}{}
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(vErr)

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

package profile

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// profileSchema — JSON-схема профиля флагов. additionalProperties: false
// в секции flags гарантирует, что опечатка в имени флага — ошибка валидации,
// а не тихо проигнорированный ключ.
const profileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "flags"],
  "additionalProperties": false,
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1
    },
    "description": {
      "type": "string"
    },
    "flags": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "cacheFileEnumerations": { "type": "boolean" },
        "loadAllFilesAsReadOnly": { "type": "boolean" },
        "msbuildExePath": { "type": "string" },
        "skipEagerWildcardEvaluation": { "type": "boolean" },
        "useSimpleProjectRootElementCacheConcurrency": { "type": "boolean" }
      }
    }
  }
}`

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// schema компилирует встроенную схему один раз на процесс.
// Ошибка компиляции — programming error, но пропагируется как обычная
// ошибка чтобы не паниковать в библиотечном коде.
func schema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(profileSchema))
		if err != nil {
			compileSchemaError = fmt.Errorf("разбор встроенной схемы: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("profile.schema.json", doc); err != nil {
			compileSchemaError = fmt.Errorf("регистрация встроенной схемы: %w", err)
			return
		}
		compiledSchema, compileSchemaError = compiler.Compile("profile.schema.json")
	})
	return compiledSchema, compileSchemaError
}

// validate проверяет JSON-содержимое профиля против встроенной схемы.
func validate(data []byte) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("профиль не является валидным JSON: %w", err)
	}
	return sch.Validate(inst)
}

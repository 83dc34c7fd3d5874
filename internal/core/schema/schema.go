// Package schema 校验请求体并解码成 schema 结构体。
//
// schema 字段必须是指针：nil 表示请求里没有这个字段（稀疏字段集），
// PATCH 依赖这一点只修改出现的字段。约束用 validate tag 声明，
// required 表示字段必须出现，其余规则交给 go-playground/validator。
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Detail 对外暴露的单条校验错误，不带入参和约束上下文
type Detail struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

type Error struct {
	Detail Detail
}

func (e *Error) Error() string { return e.Detail.Msg }

func fail(typ, msg string, loc ...string) *Error {
	if loc == nil {
		loc = []string{}
	}
	return &Error{Detail: Detail{Type: typ, Loc: loc, Msg: msg}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// bcrypt 只接受 72 字节以内
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	return v
}

// Validate 解码 raw 到 T，返回按字段声明顺序遇到的第一个错误
func Validate[T any](raw []byte) (*T, error) {
	raw = bytes.TrimSpace(raw)
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		if len(raw) == 0 || !json.Valid(raw) {
			return nil, fail("json_invalid", "Invalid JSON")
		}
		return nil, fail("model_type", "Input should be a valid dictionary or object to extract fields from")
	}

	out := new(T)
	rv := reflect.ValueOf(out).Elem()
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("schema: %T is not a struct", *out))
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "" {
			continue
		}
		if f.Type.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("schema: field %s.%s must be a pointer", rt.Name(), f.Name))
		}
		required, rules := splitRules(f.Tag.Get("validate"))

		val, ok := obj[name]
		if !ok {
			if required {
				return nil, fail("missing", "Field required", name)
			}
			continue
		}
		elem := f.Type.Elem()
		if bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			return nil, typeError(elem, name)
		}
		ptr := reflect.New(elem)
		if err := json.Unmarshal(val, ptr.Interface()); err != nil {
			return nil, typeError(elem, name)
		}
		if rules != "" {
			if err := validate.Var(ptr.Elem().Interface(), rules); err != nil {
				return nil, ruleError(err, name)
			}
		}
		rv.Field(i).Set(ptr)
	}
	return out, nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

// splitRules 拆出 required/omitempty，剩下的交给 validator
func splitRules(tag string) (required bool, rules string) {
	var keep []string
	for _, r := range strings.Split(tag, ",") {
		switch r = strings.TrimSpace(r); r {
		case "":
		case "required":
			required = true
		case "omitempty":
		default:
			keep = append(keep, r)
		}
	}
	return required, strings.Join(keep, ",")
}

func typeError(t reflect.Type, name string) *Error {
	switch t.Kind() {
	case reflect.String:
		return fail("string_type", "Input should be a valid string", name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fail("int_type", "Input should be a valid integer", name)
	case reflect.Bool:
		return fail("bool_type", "Input should be a valid boolean", name)
	default:
		return fail("type_error", "Input should be a valid "+t.Kind().String(), name)
	}
}

func ruleError(err error, name string) *Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fail("value_error", "Invalid value of "+name, name)
	}
	fe := errs[0]
	switch fe.Tag() {
	case "min":
		return fail("value_error", fmt.Sprintf("Minimal length of %s is %s", name, fe.Param()), name)
	case "max":
		return fail("value_error", fmt.Sprintf("Maximal length of %s is %s", name, fe.Param()), name)
	case "maxbytes":
		return fail("value_error", fmt.Sprintf("Maximal size of %s is %s bytes", name, fe.Param()), name)
	default:
		return fail("value_error", "Invalid value of "+name, name)
	}
}

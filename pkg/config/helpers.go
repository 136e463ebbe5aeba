package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SetValue sets a configuration value by its dotted key, e.g. "remover.boms_to_keep".
// The resulting configuration is validated before the change is kept.
func (c *Config) SetValue(key, value string) error {
	updated := *c
	field, err := lookupField(reflect.ValueOf(&updated).Elem(), key)
	if err != nil {
		return err
	}
	if err := setField(field, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}

// GetValue returns a configuration value by its dotted key.
func (c *Config) GetValue(key string) (string, error) {
	field, err := lookupField(reflect.ValueOf(c).Elem(), key)
	if err != nil {
		return "", err
	}
	return formatField(field), nil
}

// ToMap flattens the configuration into dotted keys.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	root := reflect.ValueOf(c).Elem()
	for i := 0; i < root.NumField(); i++ {
		section := root.Field(i)
		sectionKey := yamlKey(root.Type().Field(i))
		if sectionKey == "" || section.Kind() != reflect.Struct {
			continue
		}
		for j := 0; j < section.NumField(); j++ {
			key := yamlKey(section.Type().Field(j))
			if key == "" {
				continue
			}
			result[sectionKey+"."+key] = formatField(section.Field(j))
		}
	}
	return result
}

// Keys returns all dotted configuration keys in sorted order.
func (c *Config) Keys() []string {
	m := c.ToMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupField(root reflect.Value, key string) (reflect.Value, error) {
	sectionKey, fieldKey, ok := strings.Cut(key, ".")
	if !ok {
		return reflect.Value{}, fmt.Errorf("unknown configuration key: %s", key)
	}
	section, ok := fieldByYAMLKey(root, sectionKey)
	if !ok || section.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("unknown configuration key: %s", key)
	}
	field, ok := fieldByYAMLKey(section, fieldKey)
	if !ok {
		return reflect.Value{}, fmt.Errorf("unknown configuration key: %s", key)
	}
	return field, nil
}

func fieldByYAMLKey(v reflect.Value, key string) (reflect.Value, bool) {
	for i := 0; i < v.NumField(); i++ {
		if yamlKey(v.Type().Field(i)) == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func yamlKey(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

var durationType = reflect.TypeOf(time.Duration(0))

func formatField(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.String:
		return v.String()
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func setField(v reflect.Value, value string) error {
	if v.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	switch v.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.String:
		v.SetString(value)
	case reflect.Slice:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		v.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
	return nil
}

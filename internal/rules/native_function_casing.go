package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NativeFunctionCasing writes calls to core functions in their declared (lower) case.
type NativeFunctionCasing struct{ fixer.Base }

func (*NativeFunctionCasing) Name() string  { return "native_function_casing" }
func (*NativeFunctionCasing) Priority() int { return 0 }

func (*NativeFunctionCasing) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Function defined by PHP should be called using the correct casing.",
		Samples: []fixer.CodeSample{{Code: "<?php\nSTRLEN($str);\n"}},
	}
}

func (*NativeFunctionCasing) IsCandidate(s *tokens.Stream) bool {
	return s.HasAllKinds(token.Ident, token.LParen)
}

func (*NativeFunctionCasing) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.Ident {
			continue
		}
		name := lower(t.Text)
		if name == t.Text || !isNativeFunction(name) || !isFunctionCallName(s, i) {
			continue
		}
		if err := s.SetAt(i, token.New(token.Ident, name)); err != nil {
			return err
		}
	}
	return nil
}

func isNativeFunction(name string) bool {
	_, ok := nativeFunctions[name]
	return ok
}

// Неполный список: только то, что встречается в обычном коде.
var nativeFunctions = setOf(
	// strings
	"addslashes", "bin2hex", "chr", "chunk_split", "explode", "implode", "join",
	"lcfirst", "ltrim", "md5", "nl2br", "number_format", "ord", "rtrim",
	"sha1", "sprintf", "printf", "vsprintf", "str_pad", "str_repeat",
	"str_replace", "str_ireplace", "str_split", "str_word_count", "strcasecmp",
	"strcmp", "strlen", "strpos", "stripos", "strrpos", "strrev", "strstr",
	"stristr", "strtolower", "strtoupper", "strtr", "substr", "substr_count",
	"trim", "ucfirst", "ucwords", "wordwrap", "htmlspecialchars",
	"html_entity_decode", "htmlentities", "strip_tags",
	"mb_strlen", "mb_substr", "mb_strtolower", "mb_strtoupper", "mb_strpos",
	"preg_match", "preg_match_all", "preg_replace", "preg_replace_callback",
	"preg_split", "preg_quote", "base64_encode", "base64_decode", "urlencode",
	"urldecode", "rawurlencode", "http_build_query", "parse_str", "parse_url",
	"crc32", "hash", "uniqid", "serialize", "unserialize", "var_export",
	"var_dump", "print_r", "json_encode", "json_decode",
	// arrays
	"array_chunk", "array_combine", "array_diff", "array_diff_key",
	"array_fill", "array_fill_keys", "array_filter", "array_flip",
	"array_intersect", "array_intersect_key", "array_key_exists", "array_keys",
	"array_map", "array_merge", "array_merge_recursive", "array_pad",
	"array_pop", "array_push", "array_reduce", "array_reverse", "array_search",
	"array_shift", "array_slice", "array_splice", "array_sum", "array_unique",
	"array_unshift", "array_values", "array_walk", "arsort", "asort", "count",
	"current", "end", "in_array", "key", "krsort", "ksort", "next", "range",
	"reset", "rsort", "shuffle", "sizeof", "sort", "uasort", "uksort", "usort",
	"compact", "extract", "iterator_to_array",
	// types
	"boolval", "floatval", "intval", "strval", "settype", "gettype",
	"get_class", "get_parent_class", "get_object_vars", "is_array", "is_bool",
	"is_callable", "is_float", "is_int", "is_integer", "is_null", "is_numeric",
	"is_object", "is_resource", "is_string", "is_scalar", "is_iterable",
	"is_a", "is_subclass_of", "class_exists", "interface_exists",
	"method_exists", "property_exists", "function_exists", "defined", "define",
	"constant",
	// math
	"abs", "ceil", "floor", "round", "max", "min", "pow", "sqrt", "intdiv",
	"fmod", "rand", "mt_rand", "random_int", "random_bytes", "pi",
	// runtime
	"call_user_func", "call_user_func_array", "func_get_args", "func_num_args",
	"phpversion", "php_sapi_name", "php_uname", "ini_get", "ini_set",
	"error_reporting", "set_error_handler", "set_exception_handler",
	"trigger_error", "spl_autoload_register", "spl_object_hash", "usleep",
	"sleep", "microtime", "time", "date", "mktime", "strtotime", "gmdate",
	"getenv", "putenv", "header", "headers_sent", "setcookie", "ob_start",
	"ob_get_clean", "ob_end_clean", "version_compare", "extension_loaded",
	// files
	"basename", "dirname", "fclose", "feof", "fgets", "file", "file_exists",
	"file_get_contents", "file_put_contents", "fopen", "fread", "fwrite",
	"is_dir", "is_file", "is_readable", "is_writable", "mkdir", "pathinfo",
	"realpath", "rename", "rmdir", "scandir", "glob", "touch", "unlink",
	"tempnam", "sys_get_temp_dir", "getcwd", "chdir",
)

func setOf(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

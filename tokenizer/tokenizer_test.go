package tokenizer

import "testing"

func collectTokens(html string) []Token {
	tok := New(html, NewOptions())
	var out []Token
	for {
		t := tok.Next()
		if t.Kind == Done {
			break
		}
		out = append(out, t)
	}
	return out
}

func TestTokenizer_SimpleTag(t *testing.T) {
	toks := collectTokens("<div class=\"a\">hi</div>")
	if len(toks) != 3 {
		t.Fatalf("toks = %#v, want 3", toks)
	}
	if toks[0].Kind != OpenTag || toks[0].Name != "div" {
		t.Fatalf("toks[0] = %#v, want OpenTag(div)", toks[0])
	}
	if got := toks[0].AttrVal("class"); got != "a" {
		t.Fatalf("class = %q, want %q", got, "a")
	}
	if toks[1].Kind != TextToken || toks[1].Data != "hi" {
		t.Fatalf("toks[1] = %#v, want Text(hi)", toks[1])
	}
	if toks[2].Kind != CloseTag || toks[2].Name != "div" {
		t.Fatalf("toks[2] = %#v, want CloseTag(div)", toks[2])
	}
}

func TestTokenizer_VoidElementNoCloseTag(t *testing.T) {
	toks := collectTokens("<br><p>x</p>")
	if len(toks) != 4 {
		t.Fatalf("toks = %#v, want 4", toks)
	}
	if toks[0].Kind != SelfClosingTag || toks[0].Name != "br" {
		t.Fatalf("toks[0] = %#v, want SelfClosingTag(br)", toks[0])
	}
}

func TestTokenizer_SelfClosingStartTag(t *testing.T) {
	toks := collectTokens("<input/>")
	if len(toks) != 1 || toks[0].Kind != SelfClosingTag || toks[0].Name != "input" {
		t.Fatalf("toks = %#v, want single SelfClosingTag(input)", toks)
	}
}

func TestTokenizer_AttributeDeduplicationFirstWins(t *testing.T) {
	toks := collectTokens(`<div a="1" a="2">`)
	if len(toks) != 1 {
		t.Fatalf("toks = %#v, want 1", toks)
	}
	if got := toks[0].AttrVal("a"); got != "1" {
		t.Fatalf("a = %q, want %q (first occurrence wins)", got, "1")
	}
}

func TestTokenizer_CaseFolding(t *testing.T) {
	toks := collectTokens("<DIV CLASS=\"x\">")
	if toks[0].Name != "div" {
		t.Fatalf("name = %q, want lowercase", toks[0].Name)
	}
	if !toks[0].HasAttr("class") {
		t.Fatalf("want class attr folded to lowercase, got %#v", toks[0].Attrs)
	}
}

func TestTokenizer_PreserveCase(t *testing.T) {
	opts := NewOptions()
	opts.PreserveCase = true
	tok := New("<DIV CLASS=\"x\">", opts)
	tt := tok.Next()
	if tt.Name != "DIV" {
		t.Fatalf("name = %q, want DIV (preserve_case)", tt.Name)
	}
}

func TestTokenizer_Comment(t *testing.T) {
	toks := collectTokens("<!-- hi -->")
	if len(toks) != 1 || toks[0].Kind != CommentToken || toks[0].Data != " hi " {
		t.Fatalf("toks = %#v, want single Comment(' hi ')", toks)
	}
}

func TestTokenizer_Doctype(t *testing.T) {
	toks := collectTokens("<!DOCTYPE html>")
	if len(toks) != 1 || toks[0].Kind != DoctypeToken || toks[0].DoctypeName != "html" {
		t.Fatalf("toks = %#v, want single Doctype(html)", toks)
	}
}

func TestTokenizer_RawtextScriptNotTokenized(t *testing.T) {
	toks := collectTokens("<script>var x = \"<div>\";</script>")
	if len(toks) != 3 {
		t.Fatalf("toks = %#v, want 3", toks)
	}
	if toks[1].Kind != TextToken || toks[1].Data != `var x = "<div>";` {
		t.Fatalf("toks[1] = %#v, want raw script body", toks[1])
	}
	if toks[2].Kind != CloseTag || toks[2].Name != "script" {
		t.Fatalf("toks[2] = %#v, want CloseTag(script)", toks[2])
	}
}

func TestTokenizer_BrInsertCustom(t *testing.T) {
	opts := NewOptions()
	opts.BrHandling = InsertCustom
	opts.BrText = "\n"
	toks := New("a<br>b", opts)
	var out []Token
	for {
		tt := toks.Next()
		if tt.Kind == Done {
			break
		}
		out = append(out, tt)
	}
	if len(out) != 3 {
		t.Fatalf("out = %#v, want 3 Text tokens (tokenizer does not coalesce across tags)", out)
	}
	if out[0].Data != "a" || out[1].Data != "\n" || out[2].Data != "b" {
		t.Fatalf("out data = %q/%q/%q, want a/\\n/b", out[0].Data, out[1].Data, out[2].Data)
	}
}

func TestTokenizer_NbspDecode(t *testing.T) {
	opts := NewOptions()
	opts.TextProcessingMode = Decode
	opts.NbspReplacement = " "
	toks := New("a&nbsp;b", opts)
	tt := toks.Next()
	if tt.Kind != TextToken || tt.Data != "a b" {
		t.Fatalf("token = %#v, want Text(\"a b\")", tt)
	}
}

func TestTokenizer_MaxAttributesTruncatesLenient(t *testing.T) {
	opts := NewOptions()
	opts.MaxAttributes = 1
	tok := New(`<div a="1" b="2" c="3">`, opts)
	tt := tok.Next()
	if len(tt.Attrs) != 1 {
		t.Fatalf("attrs = %#v, want 1 (truncated)", tt.Attrs)
	}
	if len(tok.Errors()) == 0 {
		t.Fatalf("want a TooManyElements-style recorded error")
	}
}

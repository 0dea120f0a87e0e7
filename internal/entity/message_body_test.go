package entity

import (
	"testing"
)

func TestMessageBodyValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    MessageBody
		wantErr bool
	}{
		{
			name:    "text ok",
			body:    TextBody("Explain gradient descent"),
			wantErr: false,
		},
		{
			name:    "text empty",
			body:    MessageBody{Kind: MessageKindText, Text: &TextPayload{}},
			wantErr: true,
		},
		{
			name:    "no payload",
			body:    MessageBody{Kind: MessageKindText},
			wantErr: true,
		},
		{
			name: "two payloads",
			body: MessageBody{
				Kind: MessageKindText,
				Text: &TextPayload{Text: "hi"},
				Code: &CodePayload{Language: "go", Source: "package main"},
			},
			wantErr: true,
		},
		{
			name: "payload does not match tag",
			body: MessageBody{Kind: MessageKindCode, Text: &TextPayload{Text: "hi"}},
			wantErr: true,
		},
		{
			name: "code ok",
			body: MessageBody{Kind: MessageKindCode, Code: &CodePayload{Language: "go", Source: "fmt.Println()"}},
			wantErr: false,
		},
		{
			name: "table ragged rows",
			body: MessageBody{Kind: MessageKindTable, Table: &TablePayload{
				Headers: []string{"a", "b"},
				Rows:    [][]string{{"1", "2"}, {"3"}},
			}},
			wantErr: true,
		},
		{
			name: "table ok",
			body: MessageBody{Kind: MessageKindTable, Table: &TablePayload{
				Headers: []string{"epoch", "loss"},
				Rows:    [][]string{{"1", "0.9"}, {"2", "0.4"}},
			}},
			wantErr: false,
		},
		{
			name:    "image without url",
			body:    MessageBody{Kind: MessageKindImage, Image: &ImagePayload{Alt: "chart"}},
			wantErr: true,
		},
		{
			name:    "error ok",
			body:    MessageBody{Kind: MessageKindError, Error: &ErrorPayload{Code: "tutor_unavailable", Message: "try again"}},
			wantErr: false,
		},
		{
			name:    "unknown kind",
			body:    MessageBody{Kind: "gif", Text: &TextPayload{Text: "hi"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.body.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseMessageBody(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid text", `{"kind":"text","text":{"text":"hi"}}`, false},
		{"valid code", `{"kind":"code","code":{"language":"python","source":"print(1)"}}`, false},
		{"not json", `{"kind":`, true},
		{"untagged bag", `{"content":"hi","type":"text"}`, true},
		{"tag mismatch", `{"kind":"image","text":{"text":"hi"}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessageBody([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseMessageBody() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

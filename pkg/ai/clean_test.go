package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanModelReply(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"skills\": []}\n```", `{"skills": []}`},
		{"bare fence", "```\n{\"skills\": []}\n```", `{"skills": []}`},
		{"no fence", `{"skills": []}`, `{"skills": []}`},
		{"surrounding whitespace", "\n\n  {\"a\": 1}  \n", `{"a": 1}`},
		{"fence with padding", "  ```json\n{}\n```  ", "{}"},
		{"leading fence only", "```json\n{}", "{}"},
		{"empty", "", ""},
		{"interior backticks untouched", "{\"note\": \"```\"}", "{\"note\": \"```\"}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanModelReply(tc.in))
		})
	}
}

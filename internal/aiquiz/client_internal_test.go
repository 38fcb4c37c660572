package aiquiz

import "testing"

func TestNewClientHasNoTimeout(t *testing.T) {
	client := NewClient("http://quiz.internal", nil)
	if client.httpClient.Timeout != 0 {
		t.Errorf("timeout = %s, expected none", client.httpClient.Timeout)
	}
}

package gemini

import (
	"testing"

	"github.com/planetpals/starcall-core/core/live"
)

func TestProcessMessageFiresOpenOnSetupComplete(t *testing.T) {
	client := NewClient()

	opened := false
	options := live.ConnectOptions{OpenCallback: func() { opened = true }}

	client.processMessage([]byte(`{"setupComplete":{}}`), options)

	if !opened {
		t.Fatalf("expected setup completion to fire the open callback")
	}
}

func TestProcessMessageDispatchesServerContentInArrivalOrder(t *testing.T) {
	client := NewClient()

	observed := []string{}
	options := live.ConnectOptions{
		TranscriptDeltaCallback: func(speaker, text string) {
			observed = append(observed, "transcript:"+speaker+":"+text)
		},
		TurnCompleteCallback: func() { observed = append(observed, "turn_complete") },
		SpeechChunkCallback: func(data, mimeType string) {
			observed = append(observed, "chunk:"+mimeType)
		},
		InterruptedCallback: func() { observed = append(observed, "interrupted") },
	}

	client.processMessage([]byte(`{"serverContent":{
		"outputTranscription":{"text":"hi there"},
		"modelTurn":{"parts":[
			{"inlineData":{"mimeType":"audio/pcm;rate=24000","data":"AAAA"}},
			{"text":"ignored"}
		]},
		"interrupted":true
	}}`), options)

	expected := []string{"transcript:assistant:hi there", "chunk:audio/pcm;rate=24000", "interrupted"}
	if len(observed) != len(expected) {
		t.Fatalf("expected %d callbacks, got %v", len(expected), observed)
	}
	for i, want := range expected {
		if observed[i] != want {
			t.Fatalf("expected callback %d to be %q, got %q", i, want, observed[i])
		}
	}
}

func TestProcessMessageAttributesInputTranscriptionToUser(t *testing.T) {
	client := NewClient()

	var gotSpeaker, gotText string
	options := live.ConnectOptions{
		TranscriptDeltaCallback: func(speaker, text string) {
			gotSpeaker, gotText = speaker, text
		},
	}

	client.processMessage([]byte(`{"serverContent":{"inputTranscription":{"text":"can we visit mars"}}}`), options)

	if gotSpeaker != "user" || gotText != "can we visit mars" {
		t.Fatalf("expected user transcript delta, got speaker=%q text=%q", gotSpeaker, gotText)
	}
}

func TestProcessMessageIgnoresMalformedPayload(t *testing.T) {
	client := NewClient()

	called := false
	options := live.ConnectOptions{
		ErrorCallback:        func(string) { called = true },
		TurnCompleteCallback: func() { called = true },
	}

	client.processMessage([]byte(`{not json`), options)

	if called {
		t.Fatalf("expected malformed message to be dropped without callbacks")
	}
}

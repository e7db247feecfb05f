package voicecall

// notifier fans session changes out to the callbacks registered at start
// time. All methods are nil-safe so the session never has to check which
// callbacks the caller wired up.
type notifier struct {
	options StartOptions
}

func (n notifier) statusChanged(status string) {
	if n.options.statusChangedCallback != nil {
		n.options.statusChangedCallback(status)
	}
}

func (n notifier) transcriptsChanged(user, assistant string) {
	if n.options.transcriptsChangedCallback != nil {
		n.options.transcriptsChangedCallback(user, assistant)
	}
}

func (n notifier) listeningChanged(listening bool) {
	if n.options.listeningChangedCallback != nil {
		n.options.listeningChangedCallback(listening)
	}
}

func (n notifier) speakingChanged(speaking bool) {
	if n.options.speakingChangedCallback != nil {
		n.options.speakingChangedCallback(speaking)
	}
}

package playback

// NewLocalSynth создаёт платформо-специфичный синтезатор речи.
func NewLocalSynth() LocalSynth {
	return newLocalSynth()
}

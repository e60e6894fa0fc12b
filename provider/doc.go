// Package provider implements a small generic provider framework for
// swappable model and tooling backends.
//
// Each collaborator package (acquisition, diarization, transcription)
// defines its own Provider interface embedding the base Provider, and a
// registry for factory-based instantiation so backends stay selectable
// by name from configuration.
//
// # Usage
//
//	reg := provider.NewRegistry[diarization.Provider]()
//	reg.RegisterFactory("pyannote", pyannote.Factory())
//	p, _ := reg.Create("pyannote", cfgMap)
package provider

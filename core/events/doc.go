// Package events defines the progress events emitted on the event bus.
//
// Available event types:
//   - SignupEvent: a library started its signup
//   - ActivationEvent: a library finished signup and began scanning
//   - RefreshEvent: the candidate ranking was rebuilt
//   - TrialEvent: an outer search evaluated one weight vector
package events

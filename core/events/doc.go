// Package events defines the typed session event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - orb_state.*
//   - wake_word.*
//   - transcript.*
//   - pipeline.*
//   - conversation.*
//   - data_artifact.*
//   - proactive_task.*
//   - interaction.*
//   - config.*
//
// Semantics used across the package:
//
//   - Changed: the value moved from one state to another.
//   - Updated: mutable point-in-time snapshot that can change over time.
//   - Appended: immutable entry added to an append-only sequence.
//
// orb_state events
//
//   - OrbStateChanged (orb_state.changed): the session moved between orb
//     states; includes the previous state, the new one and a reason.
//
// wake_word events
//
//   - WakeWordDetected (wake_word.detected): the configured wake word was
//     heard while in passive listening.
//
// transcript events
//
//   - TranscriptUpdated (transcript.updated): mutable snapshot of the
//     transcript buffer. An empty transcript means the buffer was cleared.
//
// pipeline events
//
//   - PipelineStatusUpdated (pipeline.status_updated): current search stage
//     label. An empty status means the pipeline finished or was cancelled.
//
// conversation events
//
//   - ConversationTurnAppended (conversation.turn_appended): a turn was added
//     to the conversation log.
//
// data_artifact events
//
//   - DataArtifactUpdated (data_artifact.updated): a search produced a new
//     artifact that replaces the previous one.
//
// proactive_task events
//
//   - ProactiveTaskProposed (proactive_task.proposed): a task card is shown.
//   - ProactiveTaskResolved (proactive_task.resolved): the task was approved
//     or dismissed and discarded.
//
// interaction events
//
//   - InteractionFailed (interaction.failed): a collaborator failed and the
//     session reverted to standby.
//
// config events
//
//   - ConfigChanged (config.changed): wake word or passive listening changed.
package events

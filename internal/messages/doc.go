// Package messages defines message handling patterns and conventions for the
// Quarterdeck client. This includes error, success, and info messages.
// Consistent messaging across layers improves code quality, debuggability,
// and user experience.
//
// # Message Handling Patterns by Layer
//
// ## API Client Layer (internal/api)
//
// Return standard Go errors. The client is a pure data access layer and
// should not depend on UI concerns.
//
// Non-2xx responses become *api.StatusError carrying the server's detail
// text, which unwraps to a sentinel for the status class:
//
//	releases, err := client.Releases(ctx, namespace)
//	if errors.Is(err, api.ErrNotFound) {
//	    // release disappeared between refresh and action
//	}
//
// When adding context, wrap with %w so the sentinel chain survives:
//
//	if err != nil {
//	    return messages.WrapError(err, "list releases in %s", namespace)
//	}
//
// The server's detail text is already user-readable; err.Error() on a
// StatusError is safe to show in the status bar verbatim.
//
// ## Command Layer (internal/commands)
//
// Return tea.Cmd that produces a StatusMsg. Commands execute in response to
// user actions and need to communicate results back through the Bubble Tea
// message system.
//
// Pattern:
//
//	func RollbackCommand(client api.Client) ExecuteFunc {
//	    return func(ctx CommandContext) tea.Cmd {
//	        return func() tea.Msg {
//	            _, err := client.RollbackRelease(reqCtx, namespace, name, revision)
//	            if err != nil {
//	                return types.ErrorStatusMsg(fmt.Sprintf("Rollback failed: %v", err))
//	            }
//	            return types.RefreshRequestMsg{Status: types.SuccessMsg(
//	                fmt.Sprintf("Rolled back %s to revision %d", name, revision))}
//	        }
//	    }
//	}
//
// Use types.ErrorStatusMsg for errors, types.SuccessMsg for success, and
// types.InfoMsg for informational messages. Keep messages concise and
// user-friendly. A failed mutation returns a plain error status; a
// successful one wraps its status in types.RefreshRequestMsg so the app
// refetches the active screen immediately.
//
// ## UI Layer (internal/app, internal/components, internal/screens)
//
// Display errors via the StatusBar component. UI components should not format
// error messages - they receive pre-formatted StatusMsg from commands.
//
// Pattern:
//
//	case types.StatusMsg:
//	    m.statusBar.SetMessage(msg.Message, msg.Type)
//
// The status bar automatically clears after StatusBarDisplayDuration. Status
// messages are color-coded: green for success, red for errors, blue for info.
//
// One deliberate exception: the overview screen treats a failed incidents
// fetch as an empty list instead of an error, so a degraded incidents
// service cannot blank the whole dashboard. Every other fetch failure
// surfaces in the status bar.
//
// # Error Message Guidelines
//
// 1. Be specific: "Rollback failed: release production/redis not found"
// 2. Include context: What operation failed, on what resource
// 3. User-friendly: Avoid stack traces or technical details in UI messages
// 4. Consistent format: Start with verb describing what failed
//
// Good examples:
//   - "Upgrade failed: chart app-template not found in repository"
//   - "Acknowledge failed: incident already resolved"
//   - "Log stream closed: connection reset"
//
// Bad examples:
//   - "Error" (too vague)
//   - "panic: runtime error: invalid memory address" (too technical)
//   - "The system encountered an unexpected error" (no actionable info)
package messages

// Package planning turns a user profile into a periodized multi-week training
// plan and adapts existing plans to missed sessions, feedback, injuries and
// schedule or timeline changes.
//
// Everything here is a synchronous computation over the values it is given.
// Callers load profiles, catalogs and plans before invoking the engine and
// persist the results afterwards, serializing calls per user.
package planning

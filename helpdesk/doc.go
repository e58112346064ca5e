// Package helpdesk talks to the support portal's REST API. It exchanges a
// long-lived OAuth refresh token for access tokens, walks the paginated
// article listing, strips HTML bodies down to normalized plain text, and
// converts the surviving articles into vector records.
//
// Only published, non-trashed articles visible to registered users enter
// the pipeline; everything else is filtered at fetch time.
package helpdesk

// Package layout is the paginated layout engine that turns a
// [proposal.Document] into drawing calls on a [Surface].
//
// The engine owns a vertical cursor, decides page breaks before every atomic
// block, and flows the document in a fixed order: title, event data, item
// tables with subtotal banners, grand total, conditions, policy, supplier
// data and the acceptance band. Page numbers are stamped in a final pass once
// the page count is known.
//
// An Engine is built for one render and discarded afterwards. It is not safe
// for concurrent use; render documents concurrently with separate engines,
// each on its own Surface.
package layout

// Package billing is the subscription lifecycle core: catalog sync, checkout
// initiation, plan changes and webhook reconciliation.
//
// Local rows are written at two tiers:
//
//   - PROVISIONAL: user-facing flows (plan change, cancel, reactivate) mirror
//     the provider response immediately so the UI reflects the action without
//     waiting for a webhook. These writes are optimistic previews.
//   - AUTHORITATIVE: the Reconciler applies verified webhook events and always
//     wins. Subscription rows are CREATED only here; provisional writers may
//     update existing rows but never insert one.
//
// Any drift between the tiers converges on the next webhook delivery.
package billing

// Package core defines the shared vocabulary of the matchday dispatcher:
// intents, domain results, session context keys and the session store
// contract. It has no dependencies on concrete providers or models so every
// other package can import it without cycles.
package core

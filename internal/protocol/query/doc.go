// Package query translates declarative request documents into SQL.
//
// A request document lists field elements (CHAMP), table elements (TABLE) and
// at most one CONDITION element holding a raw predicate:
//
//	<REQUETE>
//	  <CHAMP>name</CHAMP>
//	  <TABLE>users</TABLE>
//	  <CONDITION>id=1</CONDITION>
//	</REQUETE>
//
// translates to "SELECT name FROM users WHERE id=1". Identifiers are not
// validated and the condition is copied verbatim: the only protection is the
// enveloped signature checked before translation, so only ever translate the
// element returned by dsig.Validate.
package query

// Package result converts store rowsets to and from result documents.
//
//	<RESULTAT>
//	  <COLONNES><COLONNE type="TEXT">name</COLONNE></COLONNES>
//	  <TUPLES>
//	    <TUPLE><CHAMP>Alice</CHAMP></TUPLE>
//	    <TUPLE><CHAMP null="true"/></TUPLE>
//	  </TUPLES>
//	</RESULTAT>
//
// Rows keep retrieval order and fields keep column order. SQL NULL is written
// as an empty CHAMP with null="true" so it survives a round trip distinct from
// the empty string.
package result

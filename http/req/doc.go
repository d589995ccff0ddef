/*
Package req gets data out of an HTTP request and into the arguments of a controller method.

A [Binder] walks a method's parameter descriptors in index order:
query params and path variables bind as strings,
while models bind as a fresh pointer to a struct filled from the request body.
JSON bodies decode with encoding/json;
form bodies decode with gorilla/schema, matching keys to "schema" struct tags.

A [Parser] does the decoding for a Binder and can be used on its own.
Either way, decoded structs are checked against their "validate" struct tags.

Notably, the parade of errors that may propagate from such a task
are translated to switchback sentinel errors in order to provide a consistent interface
for issues that arise across encoding types.
Validation failures return as [ValidationErrors], which unwrap to switchback.ErrNotValid.
*/
package req

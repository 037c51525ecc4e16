/*
Package gc defines the Game Coordinator wire surface shared by the client
packages: message type ids, protocol enums, packet metadata and codecs for
the documented subset of the GC protobuf messages.

The codecs cover only the fields this module sends or consumes. Unknown
fields are skipped on decode and the raw payload stays available on the
Packet, so nothing is lost for callers that want to parse further with their
own protobuf definitions.
*/
package gc

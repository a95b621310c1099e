package sqlinline

const QCreateDonationsTable = `--sql aff88c39-37c4-4c16-800f-3ad5bb7ebe3c
create table if not exists donations (
  id bigint generated always as identity primary key,
  donor_name text not null check (length(btrim(donor_name)) > 0),
  amount double precision not null check (amount > 0),
  currency text not null check (length(btrim(currency)) > 0),
  message text,
  created_at timestamptz not null default now()
);
`

const QInsertDonation = `--sql 6ce29ce4-f481-4373-80ed-cc19df64b730
insert into donations(donor_name, amount, currency, message)
values ($1::text, $2::double precision, $3::text, $4::text)
returning id;
`

const QListDonations = `--sql c5bd07b3-b676-4c89-8f95-1e71b5d5faef
select id, donor_name, amount, currency, message
from donations
order by id asc;
`

const QPing = `--sql fac9fed5-bfcd-4ada-81a7-cdc5ee0d6f64
select 1;
`
